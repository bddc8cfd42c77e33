package executor

import (
	"fmt"

	"github.com/xsx123123/snakemake-executor-donau/pkg/donau"
)

// Reconcile classifies every tracked job against a status snapshot and
// splits the set into jobs that stay tracked and terminal reports.
//
// Classification per job:
//   - success vocabulary → success report
//   - failure vocabulary → failure report carrying the remote state and the
//     job's log file
//   - anything else (queued, running, unknown tokens) → still pending
//
// A nil snapshot means the poll itself failed: every job is re-yielded
// unchanged and zero reports are produced, since missing data must never be
// read as success or failure. An id absent from a non-nil snapshot is also
// treated as still pending; the scheduler gives no guarantee that a
// momentarily unlisted job has finished, and assuming success would risk
// false-positive completion.
//
// The function is pure: it never talks to the scheduler or the reporter.
func Reconcile(snapshot map[string]string, tracked []TrackedJob) (pending []TrackedJob, reports []Report) {
	if snapshot == nil {
		return tracked, nil
	}

	for _, job := range tracked {
		state, ok := snapshot[job.ExternalID]
		if !ok {
			pending = append(pending, job)
			continue
		}

		switch donau.ClassifyState(state) {
		case donau.StateSuccess:
			reports = append(reports, Report{
				Job:     job,
				Outcome: OutcomeSuccess,
				State:   state,
			})
		case donau.StateFailed:
			reports = append(reports, Report{
				Job:     job,
				Outcome: OutcomeFailure,
				State:   state,
				Message: fmt.Sprintf("donau job %s failed with state %s", job.ExternalID, state),
				Logs:    []string{job.LogFile},
			})
		default:
			pending = append(pending, job)
		}
	}

	return pending, reports
}
