// Package main is landingctl, an operator CLI for keyword landing pages,
// content search and the catalog cache.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "landingctl",
		Short: "Inspect keyword landing pages, search and the catalog cache",
		Long: `landingctl runs the same catalog, keyword and search pipeline as the
HTTP service against the configured catalog, without starting a server.

Configuration is read from configs/config.yaml (or --config) with the same
environment overrides as the service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.output != outputJSON && a.output != outputYAML {
				return fmt.Errorf("--output must be %q or %q, got %q", outputJSON, outputYAML, a.output)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./configs/config.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputJSON, "output format: json or yaml")

	root.AddCommand(
		newResolveCmd(a),
		newParseCmd(a),
		newSearchCmd(a),
		newCacheCmd(a),
		newActivitiesCmd(a),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
