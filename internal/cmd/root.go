// Package cmd wires the donau-executor CLI: submission, status polling,
// cancellation and registry inspection.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xsx123123/snakemake-executor-donau/internal/config"
	"github.com/xsx123123/snakemake-executor-donau/internal/observability"
	"github.com/xsx123123/snakemake-executor-donau/pkg/donau"
	"github.com/xsx123123/snakemake-executor-donau/pkg/executor"
	"github.com/xsx123123/snakemake-executor-donau/pkg/registry"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "donau-executor",
	Short: "Submit and track workflow jobs on the Huawei Donau scheduler",
	Long: `donau-executor is the adapter between a workflow engine and the Donau
batch scheduler. It submits jobs via dsub, tracks their external ids in a
local registry, reconciles remote state via djob, and cancels via dkill.

Configuration comes from donau.yaml in the working directory and DONAU_*
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = observability.NewLogger(observability.Options{
			Level:      cfg.Logging.Level,
			File:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI with signal-aware context cancellation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func newClient() *donau.Client {
	return donau.New(donau.Config{
		SubmitCmd:  cfg.Scheduler.SubmitCmd,
		QueryCmd:   cfg.Scheduler.QueryCmd,
		CancelCmd:  cfg.Scheduler.CancelCmd,
		Retries:    cfg.Submit.Retries,
		RetryDelay: cfg.Submit.RetryDelay,
		RateLimit:  cfg.Poll.RateLimit,
	}, logger)
}

func newStore() *registry.Store {
	return registry.NewStore(cfg.RegistryRoot)
}

func newExecutor(rep executor.Reporter) *executor.Executor {
	return executor.New(newClient(), rep, executor.Config{
		LogRoot: cfg.LogRoot,
		WorkDir: cfg.WorkDir,
	}, logger)
}

// trackedFromRecords rebuilds the executor's working set from persisted
// registry records.
func trackedFromRecords(records []registry.JobRecord) []executor.TrackedJob {
	tracked := make([]executor.TrackedJob, 0, len(records))
	for _, r := range records {
		tracked = append(tracked, executor.TrackedJob{
			ExternalID: r.ExternalID,
			JobName:    r.JobName,
			Job: &executor.JobDescriptor{
				Name:    r.Rule,
				JobID:   r.JobID,
				Group:   r.Group,
				GroupID: r.GroupID,
			},
			LogFile: r.LogFile,
		})
	}
	return tracked
}
