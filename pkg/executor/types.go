// Package executor implements the job lifecycle engine that sits between a
// workflow engine and the Donau scheduler: submission, external-id
// registration, recurring status reconciliation and teardown cancellation.
package executor

import "github.com/xsx123123/snakemake-executor-donau/pkg/donau"

// Wildcard is one resolved wildcard key/value pair. Order is significant:
// it determines the log directory layout.
type Wildcard struct {
	Key   string
	Value string
}

// JobDescriptor is the read-only view of a fully resolved workflow job as
// handed over by the engine. The executor never mutates it.
type JobDescriptor struct {
	// Name is the rule name, or the group name for group jobs.
	Name string

	// JobID is the engine's numeric id for this job within the run.
	JobID int

	// Group marks a group job; GroupID is only meaningful when set.
	Group   bool
	GroupID string

	// Wildcards are the resolved wildcard values, in rule order.
	Wildcards []Wildcard

	// Resources is the typed resource request.
	Resources donau.Resources

	// Threads is the requested CPU thread count.
	Threads int

	// Priority is the workflow priority; zero means unprioritized.
	Priority int

	// Command is the pre-formatted execution payload supplied by the
	// engine, passed to the scheduler as a single token.
	Command string
}

// TrackedJob is the working record for an in-flight job. It is created at
// successful submission and presented back on every poll until the executor
// reports a terminal outcome, after which the caller stops presenting it.
type TrackedJob struct {
	// ExternalID is the scheduler-assigned identifier, immutable after
	// submission.
	ExternalID string

	// JobName is the scheduler-visible name the job was submitted under.
	JobName string

	// Job is the owning descriptor.
	Job *JobDescriptor

	// LogFile is the per-job log path, attached to failure reports.
	LogFile string
}

// Outcome is a terminal classification of a tracked job.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

// Report is one terminal outcome produced by reconciliation. Exactly one
// report is ever emitted per external job id.
type Report struct {
	Job     TrackedJob
	Outcome Outcome

	// State is the raw remote state that triggered the report.
	State string

	// Message is the failure description; empty on success.
	Message string

	// Logs are diagnostic attachments for failure reports.
	Logs []string
}

// Reporter is the narrow callback contract back into the workflow engine.
type Reporter interface {
	// ReportSubmission registers a freshly submitted job with the engine.
	ReportSubmission(job TrackedJob)

	// ReportSuccess marks a tracked job as completed normally.
	ReportSuccess(job TrackedJob)

	// ReportFailure marks a tracked job as terminally failed, with
	// diagnostic log attachments.
	ReportFailure(job TrackedJob, message string, logs []string)
}
