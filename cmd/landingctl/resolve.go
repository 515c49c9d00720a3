package main

import (
	"github.com/spf13/cobra"

	"institute-discovery/internal/keyword"
	"institute-discovery/internal/landing"
)

func newResolveCmd(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Resolve a keyword landing slug against the catalog",
		Long: `Resolve runs guard, parse, filter and paginate for one slug exactly as
GET /<slug>?page=N does, and prints the resolution.`,
		Example: "  landingctl resolve top-10-yoga-colleges-in-new-delhi --page 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := a.loader(cmd.Context())
			if err != nil {
				return err
			}

			res, err := landing.NewResolver(loader, nil, a.log).Resolve(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, res)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "requested page, corrected into range")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <slug>",
		Short: "Show the query extracted from a slug without filtering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			out := struct {
				Slug      string                      `json:"slug"`
				HasIntent bool                        `json:"hasIntent"`
				Query     *keyword.ParsedKeywordQuery `json:"query,omitempty"`
			}{Slug: slug, HasIntent: keyword.HasIntentToken(slug)}

			if out.HasIntent {
				loader, err := a.loader(cmd.Context())
				if err != nil {
					return err
				}
				in, err := loader.Load(cmd.Context())
				if err != nil {
					return err
				}
				q := keyword.Parse(slug, in.Categories, in.Locations)
				out.Query = &q
			}
			return render(cmd.OutOrStdout(), a.output, out)
		},
	}
}
