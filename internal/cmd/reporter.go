package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/xsx123123/snakemake-executor-donau/pkg/executor"
	"github.com/xsx123123/snakemake-executor-donau/pkg/registry"
)

// registryReporter plays the workflow-engine role for the CLI: every
// lifecycle report is persisted in the tracked-job registry. Terminal
// updates are idempotent because the executor emits at most one terminal
// report per external id.
type registryReporter struct {
	store   *registry.Store
	workDir string
	log     *zap.Logger
}

func newRegistryReporter(store *registry.Store, workDir string, log *zap.Logger) *registryReporter {
	return &registryReporter{store: store, workDir: workDir, log: log}
}

func (r *registryReporter) ReportSubmission(job executor.TrackedJob) {
	rec := &registry.JobRecord{
		ExternalID:  job.ExternalID,
		JobName:     job.JobName,
		Rule:        job.Job.Name,
		JobID:       job.Job.JobID,
		Group:       job.Job.Group,
		GroupID:     job.Job.GroupID,
		State:       registry.JobStateSubmitted,
		LogFile:     job.LogFile,
		WorkDir:     r.workDir,
		SubmittedAt: time.Now().UTC(),
	}
	if err := r.store.Write(rec); err != nil {
		r.log.Warn("failed to persist submission record",
			zap.String("external_id", job.ExternalID),
			zap.Error(err))
	}
}

func (r *registryReporter) ReportSuccess(job executor.TrackedJob) {
	r.finish(job, registry.JobStateSucceeded, "")
}

func (r *registryReporter) ReportFailure(job executor.TrackedJob, message string, logs []string) {
	r.finish(job, registry.JobStateFailed, message)
}

func (r *registryReporter) finish(job executor.TrackedJob, state registry.JobState, message string) {
	rec, err := r.store.Get(job.ExternalID)
	if err != nil {
		// Record lost or never written; reconstruct what we know.
		rec = &registry.JobRecord{
			ExternalID: job.ExternalID,
			JobName:    job.JobName,
			Rule:       job.Job.Name,
			JobID:      job.Job.JobID,
			LogFile:    job.LogFile,
		}
	}

	now := time.Now().UTC()
	rec.State = state
	rec.FailureMessage = message
	rec.EndedAt = &now

	if err := r.store.Write(rec); err != nil {
		r.log.Warn("failed to persist terminal record",
			zap.String("external_id", job.ExternalID),
			zap.Error(err))
	}
}
