package main

import (
	"strings"

	"github.com/spf13/cobra"

	"institute-discovery/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		types string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "search <query>",
		Short:   "Search institutes, courses, retreats, questions and articles",
		Example: "  landingctl search \"yoga pune\" --type institute,course --limit 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []string
			if types != "" {
				raw = strings.Split(types, ",")
			}
			contentTypes, err := search.ParseTypes(raw)
			if err != nil {
				return err
			}

			svc, err := a.searchService(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Search(cmd.Context(), search.Query{
				Text:  strings.Join(args, " "),
				Types: contentTypes,
				Limit: limit,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, result)
		},
	}

	cmd.Flags().StringVar(&types, "type", "", "comma-separated content types")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	return cmd
}
