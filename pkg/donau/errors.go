package donau

import (
	"errors"
	"fmt"
)

// SubmitError is returned when a submission exhausted its retry budget.
// It carries the exact command line and the last captured output so the
// failure can be diagnosed against the scheduler by hand.
type SubmitError struct {
	Command string
	Output  string
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("donau submission failed\ncommand: %s\noutput: %s", e.Command, e.Output)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ParseIDError is returned when submission succeeded but no job id could be
// recognized in the output. The job may already be running remotely with no
// tracked handle, so this is always surfaced as a workflow-level error.
type ParseIDError struct {
	Output string
}

func (e *ParseIDError) Error() string {
	return fmt.Sprintf("could not parse donau job id from output:\n%s", e.Output)
}

// QueryError records a failed djob phase. Status queries degrade
// gracefully, so callers log it and keep the partial snapshot.
type QueryError struct {
	Command string
	Output  string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("donau status query failed: %s: %v", e.Command, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsSubmitFailure reports whether err is a terminal submission failure.
func IsSubmitFailure(err error) bool {
	var se *SubmitError
	return errors.As(err, &se)
}

// IsParseFailure reports whether err is a job-id extraction failure.
func IsParseFailure(err error) bool {
	var pe *ParseIDError
	return errors.As(err, &pe)
}
