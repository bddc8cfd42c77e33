package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run one status poll cycle over active jobs",
	Long: `Query the scheduler once for every non-terminal job in the registry,
record terminal outcomes, and report how many jobs remain pending.`,
	RunE: runPoll,
}

func init() {
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Poll.Timeout)
	defer cancel()

	pending := exec.CheckActiveJobs(ctx, trackedFromRecords(active))
	fmt.Fprintf(cmd.OutOrStdout(), "%d active, %d still pending\n", len(active), len(pending))
	return nil
}
