package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xsx123123/snakemake-executor-donau/pkg/donau"
)

// Config configures an Executor.
type Config struct {
	// LogRoot is the directory per-job logs are written under.
	// Default: DefaultLogRoot
	LogRoot string

	// WorkDir is the working directory passed to remote jobs (--cwd).
	WorkDir string
}

// Executor submits workflow jobs to the Donau scheduler and reconciles
// their remote lifecycle back into terminal reports.
//
// An Executor owns one run-scoped UUID: every job name submitted through it
// shares the same 8-character suffix. The scheduler disambiguates jobs by
// external id, never by name, so the shared suffix is cosmetic.
type Executor struct {
	client   *donau.Client
	reporter Reporter
	cfg      Config
	log      *zap.Logger

	runID string

	// pollMu serializes poll cycles: a new cycle must not start before the
	// previous one completed.
	pollMu sync.Mutex
}

// New creates an executor around a scheduler client and a reporter.
// A nil logger disables executor logging.
func New(client *donau.Client, reporter Reporter, cfg Config, log *zap.Logger) *Executor {
	if cfg.LogRoot == "" {
		cfg.LogRoot = DefaultLogRoot
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Executor{
		client:   client,
		reporter: reporter,
		cfg:      cfg,
		log:      log,
		runID:    uuid.New().String(),
	}
	e.log.Info("donau executor initialized", zap.String("run_id", e.runID))
	return e
}

// RunID returns the run-scoped UUID generated at construction.
func (e *Executor) RunID() string {
	return e.runID
}

// JobName derives the scheduler-visible name for a job:
// smk_<rule-or-group-name>_<first 8 hex chars of the run id>.
func (e *Executor) JobName(job *JobDescriptor) string {
	return fmt.Sprintf("smk_%s_%s", job.Name, e.runID[:8])
}

// SubmitJob submits one job synchronously and registers the resulting
// tracked handle with the reporter.
//
// Failure modes are distinct: a *donau.SubmitError means the scheduler
// never accepted the job (retry budget exhausted); a *donau.ParseIDError
// means the job was accepted but its id could not be extracted, so it may
// be running remotely without a tracked handle. Both unwind to the caller
// as workflow-level failures and the job is never marked submitted.
func (e *Executor) SubmitJob(ctx context.Context, job *JobDescriptor) (TrackedJob, error) {
	logFile, err := LogPath(e.cfg.LogRoot, job)
	if err != nil {
		return TrackedJob{}, fmt.Errorf("resolve log path: %w", err)
	}
	if err := EnsureLogDir(logFile); err != nil {
		return TrackedJob{}, err
	}

	spec := donau.SubmitSpec{
		JobName:   e.JobName(job),
		LogFile:   logFile,
		WorkDir:   e.cfg.WorkDir,
		Resources: job.Resources,
		Threads:   job.Threads,
		Priority:  job.Priority,
		Payload:   job.Command,
	}
	args := donau.BuildSubmitArgs(spec, e.log)

	e.log.Debug("submitting job",
		zap.String("job", job.Name),
		zap.Int("jobid", job.JobID),
		zap.Strings("args", args))

	output, err := e.client.Submit(ctx, args)
	if err != nil {
		e.log.Error("donau submission failed",
			zap.String("job", job.Name),
			zap.Error(err))
		return TrackedJob{}, err
	}

	externalID, err := donau.ExtractJobID(output)
	if err != nil {
		e.log.Error("could not parse job id",
			zap.String("job", job.Name),
			zap.String("output", output))
		return TrackedJob{}, err
	}

	tracked := TrackedJob{
		ExternalID: externalID,
		JobName:    spec.JobName,
		Job:        job,
		LogFile:    logFile,
	}

	e.log.Info("job submitted",
		zap.String("job", job.Name),
		zap.String("external_id", externalID))
	e.reporter.ReportSubmission(tracked)

	return tracked, nil
}

// CheckActiveJobs runs one poll cycle over the currently tracked jobs:
// query the scheduler, reconcile the snapshot, emit terminal reports, and
// return the jobs that remain tracked for the next cycle.
//
// Cycles never overlap: a concurrent call blocks until the in-flight cycle
// finishes. A total or partial query failure is logged and degrades to
// treating unresolved jobs as still pending; it is never fatal and never
// loses a job.
func (e *Executor) CheckActiveJobs(ctx context.Context, tracked []TrackedJob) []TrackedJob {
	if len(tracked) == 0 {
		return nil
	}

	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	ids := make([]string, 0, len(tracked))
	for _, job := range tracked {
		ids = append(ids, job.ExternalID)
	}

	snapshot, err := e.client.QueryStatus(ctx, ids)
	if err != nil {
		e.log.Warn("status poll degraded, unresolved jobs stay pending",
			zap.Int("tracked", len(tracked)),
			zap.Int("resolved", len(snapshot)),
			zap.Error(err))
	}

	pending, reports := Reconcile(snapshot, tracked)

	for _, r := range reports {
		switch r.Outcome {
		case OutcomeSuccess:
			e.log.Info("job succeeded",
				zap.String("external_id", r.Job.ExternalID),
				zap.String("state", r.State))
			e.reporter.ReportSuccess(r.Job)
		case OutcomeFailure:
			e.log.Warn("job failed",
				zap.String("external_id", r.Job.ExternalID),
				zap.String("state", r.State))
			e.reporter.ReportFailure(r.Job, r.Message, r.Logs)
		}
	}

	return pending
}

// CancelJobs best-effort cancels every tracked job in one bulk call.
// It never returns an error; failures are logged by the client.
func (e *Executor) CancelJobs(ctx context.Context, tracked []TrackedJob) {
	if len(tracked) == 0 {
		return
	}
	ids := make([]string, 0, len(tracked))
	for _, job := range tracked {
		ids = append(ids, job.ExternalID)
	}
	e.client.Cancel(ctx, ids)
}
