package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xsx123123/snakemake-executor-donau/pkg/jobspec"
)

var submitJobPath string

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a job described by a YAML file",
	Long: `Submit one fully resolved job to the Donau scheduler.

The job description carries identity, resources, threads, priority and the
pre-formatted execution command. On success the scheduler-assigned external
id is printed and the job is recorded in the local registry for polling.

Example:
  donau-executor submit --job align_17.yaml`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&submitJobPath, "job", "j", "", "Path to job description (required)")
	_ = submitCmd.MarkFlagRequired("job")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	job, err := jobspec.Load(submitJobPath)
	if err != nil {
		logger.Error("failed to load job description",
			zap.String("path", submitJobPath),
			zap.Error(err))
		return err
	}

	rep := newRegistryReporter(newStore(), cfg.WorkDir, logger)
	exec := newExecutor(rep)

	tracked, err := exec.SubmitJob(ctx, job.Descriptor())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tracked.ExternalID)
	return nil
}
