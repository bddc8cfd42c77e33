package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var jobsAll bool

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List tracked jobs from the registry",
	RunE:  runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().BoolVar(&jobsAll, "all", false, "Include terminal jobs")
}

func runJobs(cmd *cobra.Command, args []string) error {
	store := newStore()

	records, err := store.List()
	if err != nil {
		return err
	}
	if !jobsAll {
		active, err := store.ListActive()
		if err != nil {
			return err
		}
		records = active
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tracked jobs")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXTERNAL_ID\tRULE\tJOBID\tSTATE\tSUBMITTED\tLOG")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ExternalID, r.Rule, r.JobID, r.State,
			r.SubmittedAt.Format(time.RFC3339), r.LogFile)
	}
	return w.Flush()
}
