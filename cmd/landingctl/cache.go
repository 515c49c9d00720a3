package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"institute-discovery/internal/catalog"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Redis catalog cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop cached categories and listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cached, err := a.catalogSource(cmd.Context())
			if err != nil {
				return err
			}
			if cached == nil {
				return fmt.Errorf("no catalog cache configured (database.redis.address is empty)")
			}
			if err := cached.Invalidate(cmd.Context()); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, map[string]interface{}{
				"flushed": []string{catalog.CategoriesCacheKey, catalog.ListingsCacheKey},
			})
		},
	})
	return cmd
}
