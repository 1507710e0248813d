// Package report implements read-only reports from the command line.
package report

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/common"
	internalreport "github.com/jonesrussell/north-cloud/seo-monitor/internal/report"
	"github.com/spf13/cobra"
)

const (
	dateFormat            = "2006-01-02 15:04"
	defaultExecutionLimit = 20
)

// Command returns the report command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print changes, change statistics and recent executions",
	}
	cmd.AddCommand(changesCommand(), statsCommand(), executionsCommand())
	return cmd
}

func changesCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "List position, backlink and listing changes across sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			changes, err := env.Services.Reports.RecentChanges(cmd.Context(), days)
			if err != nil {
				return err
			}

			t := common.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Date", "Site", "Type", "Change", "Impact", "Description"})
			for _, c := range changes {
				t.AppendRow(table.Row{
					c.Date.Local().Format(dateFormat),
					c.Site,
					c.Type,
					formatChange(c),
					c.Impact,
					c.Description,
				})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", internalreport.DefaultChangeDays, "look-back window in days")
	return cmd
}

func statsCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize position and backlink movement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			stats, err := env.Services.Reports.ChangeStats(cmd.Context(), days)
			if err != nil {
				return err
			}

			t := common.NewTable(cmd.OutOrStdout())
			t.SetTitle(fmt.Sprintf("Last %d days", days))
			t.AppendHeader(table.Row{"Metric", "Value"})
			t.AppendRows([]table.Row{
				{"Positions improved", stats.Positions.Improved},
				{"Positions declined", stats.Positions.Declined},
				{"Average gain", stats.Positions.AvgGain},
				{"Average loss", stats.Positions.AvgLoss},
				{"New backlinks", stats.Backlinks.New},
				{"Lost backlinks", stats.Backlinks.Lost},
				{"Net backlinks", stats.Backlinks.Net},
			})
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", internalreport.DefaultChangeDays, "look-back window in days")
	return cmd
}

func executionsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "executions",
		Short: "List the latest monitoring runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := common.NewEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			rows, err := env.Services.Reports.RecentExecutions(cmd.Context(), limit)
			if err != nil {
				return err
			}

			t := common.NewTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Type", "Site", "Status", "Started", "Duration", "Error"})
			for _, e := range rows {
				site, duration, errMsg := "all", "", ""
				if e.SiteName != nil {
					site = *e.SiteName
				}
				if e.CompletedAt != nil {
					duration = e.CompletedAt.Sub(e.StartedAt).Round(time.Second).String()
				}
				if e.ErrorMessage != nil {
					errMsg = *e.ErrorMessage
				}
				t.AppendRow(table.Row{e.ID, e.Type, site, e.Status, e.StartedAt.Local().Format(dateFormat), duration, errMsg})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultExecutionLimit, "number of executions")
	return cmd
}

func formatChange(c internalreport.Change) string {
	if c.Change > 0 {
		return fmt.Sprintf("+%g", c.Change)
	}
	return fmt.Sprintf("%g", c.Change)
}
