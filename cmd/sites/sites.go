// Package sites implements site management from the command line.
package sites

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/common"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	internalsites "github.com/jonesrussell/north-cloud/seo-monitor/internal/sites"
	"github.com/spf13/cobra"
)

// Command returns the sites command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Manage tracked sites",
	}
	cmd.AddCommand(listCommand(), importCommand(), seedKeywordsCommand())
	return cmd
}

func listCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			svc := env.Services.Sites
			list := svc.List
			if all {
				list = svc.ListAll
			}
			rows, err := list(cmd.Context())
			if err != nil {
				return err
			}

			t := common.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Domain", "Name", "Listing", "Active"})
			for _, s := range rows {
				t.AppendRow(table.Row{s.ID, s.Domain, s.Name, listingLabel(s), s.Active})
			}
			t.AppendFooter(table.Row{"", "", "", "Total", len(rows)})
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include inactive sites")
	return cmd
}

func importCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import [URL...]",
		Short: "Import sites from URLs or a YAML manifest",
		Long: `Import sites from URLs given as arguments, or from a YAML manifest:

  sites:
    - domain: example.com
      name: Example
      listing_name: Example Plomberie
      listing_city: Paris
      keywords: [plombier paris]

Domains already tracked are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return common.ErrNothingToImport
			}

			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			var result *internalsites.ImportReport
			if file != "" {
				result, err = importManifest(cmd, env.Services.Sites, file)
			} else {
				result, err = env.Services.Sites.BulkImport(cmd.Context(), args)
			}
			if err != nil {
				return err
			}
			renderImport(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML manifest of sites")
	return cmd
}

func importManifest(cmd *cobra.Command, svc *internalsites.Service, path string) (*internalsites.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	manifest, err := internalsites.ParseManifest(f)
	if err != nil {
		return nil, err
	}
	return svc.ImportManifest(cmd.Context(), manifest)
}

func renderImport(cmd *cobra.Command, r *internalsites.ImportReport) {
	t := common.NewTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Input", "Domain", "Outcome"})
	for _, c := range r.Details.Created {
		t.AppendRow(table.Row{c.URL, c.Domain, fmt.Sprintf("created (id %d)", c.Site.ID)})
	}
	for _, s := range r.Details.Skipped {
		t.AppendRow(table.Row{s.URL, s.Domain, "skipped: " + s.Reason})
	}
	for _, e := range r.Details.Errors {
		t.AppendRow(table.Row{e.URL, "", "error: " + e.Error})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("total %d", r.Summary.Total),
		fmt.Sprintf("created %d", r.Summary.Created),
		fmt.Sprintf("skipped %d, errors %d", r.Summary.Skipped, r.Summary.Errors),
	})
	t.Render()
}

func seedKeywordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-keywords",
		Short: "Give active sites without keywords one keyword derived from the domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			n, err := env.Services.Sites.SeedKeywords(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d keyword(s) created\n", n)
			return nil
		},
	}
}

func listingLabel(s *domain.Site) string {
	if !s.HasListingTarget() {
		return "discovery"
	}
	return *s.ListingName + ", " + *s.ListingCity
}
