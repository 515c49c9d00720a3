package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"institute-discovery/pkg/registry"
)

func newActivitiesCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the BPMN activities served by the job workers",
		Long: `Activities prints the activity registry compiled into the service, or
validates and prints the registry file given by --registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if path != "" {
				var err error
				if reg, err = registry.LoadRegistry(path); err != nil {
					return fmt.Errorf("load registry %s: %w", path, err)
				}
			}
			return render(cmd.OutOrStdout(), a.output, reg)
		},
	}

	cmd.Flags().StringVar(&path, "registry", "", "registry file to validate instead of the built-in one")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of landingctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "landingctl %s\n", version)
		},
	}
}
