// Package registry persists tracked-job records on disk so the CLI can
// resume status polling across process invocations.
package registry

import "time"

// JobState is the local lifecycle state of a tracked job.
//
// NOTE: These values are persisted in job files and are part of the stable
// on-disk contract.
type JobState string

const (
	JobStateSubmitted JobState = "submitted"
	JobStateSucceeded JobState = "succeeded"
	JobStateFailed    JobState = "failed"
)

// Terminal reports whether s is a terminal state.
func (s JobState) Terminal() bool {
	return s == JobStateSucceeded || s == JobStateFailed
}

// JobRecord is the persistent record for one submitted job, keyed by the
// scheduler-assigned external id.
//
// The schema is designed for backward-compatible extension (additive fields).
type JobRecord struct {
	ExternalID string   `json:"external_id"`
	JobName    string   `json:"job_name"`
	Rule       string   `json:"rule"`
	JobID      int      `json:"job_id"`
	Group      bool     `json:"group,omitempty"`
	GroupID    string   `json:"group_id,omitempty"`
	State      JobState `json:"state"`

	// FailureMessage is set for failed jobs.
	FailureMessage string `json:"failure_message,omitempty"`

	LogFile string `json:"log_file"`
	WorkDir string `json:"work_dir,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}
