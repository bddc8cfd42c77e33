package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCancelOnExit bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll active jobs on a fixed cadence until all are terminal",
	Long: `Repeatedly poll the scheduler for every non-terminal job in the registry.

Cycles run on a fixed cadence and never overlap: the next tick waits for the
previous cycle to finish, and each cycle is bounded by the poll timeout. The
loop exits once every tracked job has a terminal outcome, or on interrupt.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchCancelOnExit, "cancel-on-exit", false,
		"Best-effort cancel remaining jobs when interrupted")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	active, err := newStore().ListActive()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no active jobs")
		return nil
	}

	rep := newRegistryReporter(newStore(), cfg.WorkDir, logger)
	exec := newExecutor(rep)
	tracked := trackedFromRecords(active)

	logger.Info("watching jobs",
		zap.Int("jobs", len(tracked)),
		zap.Duration("interval", cfg.Poll.Interval))

	// Give the scheduler time to register fresh submissions before the
	// first query.
	if err := waitFor(ctx, cfg.Poll.InitialDelay); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Poll.Interval)
	defer ticker.Stop()

	for {
		cycleCtx, cancel := context.WithTimeout(ctx, cfg.Poll.Timeout)
		tracked = exec.CheckActiveJobs(cycleCtx, tracked)
		cancel()

		if len(tracked) == 0 {
			logger.Info("all jobs reached a terminal state")
			return nil
		}

		select {
		case <-ctx.Done():
			if watchCancelOnExit {
				// Teardown must not block on a cancelled context.
				exec.CancelJobs(context.Background(), tracked)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
