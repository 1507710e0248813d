// Package run implements synchronous monitoring runs from the command line.
package run

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonesrussell/north-cloud/seo-monitor/cmd/common"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/monitor"
	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, svc *monitor.Service, siteID int64) (*monitor.RunResult, error)

// Command returns the run command and its per-probe subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run monitoring now and wait for it to finish",
	}

	cmd.AddCommand(
		newRunCommand("full", "Monitor every active site", false,
			func(ctx context.Context, svc *monitor.Service, _ int64) (*monitor.RunResult, error) {
				return svc.RunFull(ctx)
			}),
		newRunCommand("positions", "Check keyword positions of one site", true,
			func(ctx context.Context, svc *monitor.Service, siteID int64) (*monitor.RunResult, error) {
				return svc.RunPositions(ctx, siteID)
			}),
		newRunCommand("listing", "Check the business listing of one site", true,
			func(ctx context.Context, svc *monitor.Service, siteID int64) (*monitor.RunResult, error) {
				return svc.RunListing(ctx, siteID)
			}),
		newRunCommand("backlinks", "Discover backlinks of one site", true,
			func(ctx context.Context, svc *monitor.Service, siteID int64) (*monitor.RunResult, error) {
				return svc.RunBacklinks(ctx, siteID)
			}),
	)
	return cmd
}

func newRunCommand(use, short string, targeted bool, fn runFunc) *cobra.Command {
	var siteID int64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if targeted && siteID <= 0 {
				return common.ErrSiteRequired
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			env, err := common.NewEnv(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			monitorSvc := env.Services.Monitor
			if _, err = monitorSvc.RecoverInterrupted(ctx); err != nil {
				env.Logger.Warn("Failed to recover interrupted executions", "error", err)
			}

			result, err := fn(ctx, monitorSvc, siteID)
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "execution %d: success=%t\n", result.ExecutionID, result.Success)
			}
			if errors.Is(err, monitor.ErrRunInProgress) {
				return fmt.Errorf("another run is active: %w", err)
			}
			return err
		},
	}

	if targeted {
		cmd.Flags().Int64Var(&siteID, "site", 0, "site ID to check")
	}
	return cmd
}
