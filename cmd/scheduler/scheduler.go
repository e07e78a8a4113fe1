// Package scheduler implements periodic scans on a cron schedule.
package scheduler

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/motscan/motscan/cmd/common"
)

// defaultSchedule runs a scan every six hours.
const defaultSchedule = "0 */6 * * *"

// Command creates the scheduler command.
func Command() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run scans on a cron schedule",
		Long: `Starts a scheduler that runs a full scan on the given cron schedule.
Runs continuously until interrupted with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return runScheduler(cmd, deps, schedule)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", defaultSchedule, "cron schedule expression")
	return cmd
}

// runScheduler blocks, running scans on the schedule until a signal arrives.
func runScheduler(cmd *cobra.Command, deps common.CommandDeps, schedule string) error {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		deps.Logger.Info("scheduled scan starting", "schedule", schedule)
		if scanErr := common.RunScan(cmd.Context(), deps); scanErr != nil {
			deps.Logger.Error("scheduled scan failed", "error", scanErr)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	deps.Logger.Info("scheduler started", "schedule", schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		deps.Logger.Info("shutting down", "signal", sig.String())
	case <-cmd.Context().Done():
	}

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
