package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelAll bool

var cancelCmd = &cobra.Command{
	Use:   "cancel [external-id ...]",
	Short: "Best-effort cancellation of scheduler jobs",
	Long: `Issue one bulk dkill for the given external ids, or for every active
job in the registry with --all. Cancellation is fire-and-forget: failures
are logged but never reported as errors, and no confirmation is awaited.`,
	RunE: runCancel,
}

func init() {
	rootCmd.AddCommand(cancelCmd)

	cancelCmd.Flags().BoolVar(&cancelAll, "all", false, "Cancel every active job in the registry")
}

func runCancel(cmd *cobra.Command, args []string) error {
	ids := args
	if cancelAll {
		active, err := newStore().ListActive()
		if err != nil {
			return err
		}
		ids = nil
		for _, r := range active {
			ids = append(ids, r.ExternalID)
		}
	}

	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to cancel")
		return nil
	}

	newClient().Cancel(cmd.Context(), ids)
	fmt.Fprintf(cmd.OutOrStdout(), "cancellation requested for %d job(s)\n", len(ids))
	return nil
}
