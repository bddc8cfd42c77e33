package donau

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(runner *fakeRunner) (*Client, *[]time.Duration) {
	c := New(Config{RetryDelay: 2 * time.Second}, nil).WithRunner(runner)
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestSubmitFirstAttemptSucceeds(t *testing.T) {
	runner := &fakeRunner{responses: []fakeResponse{
		{out: "Job <100> is submitted\n"},
	}}
	c, slept := newTestClient(runner)

	out, err := c.Submit(context.Background(), []string{"-n", "smk_test"})
	require.NoError(t, err)
	assert.Equal(t, "Job <100> is submitted", out)
	assert.Len(t, runner.calls, 1)
	assert.Equal(t, "dsub", runner.calls[0].name)
	assert.Empty(t, *slept)
}

func TestSubmitRetriesWithLinearBackoff(t *testing.T) {
	bootErr := errors.New("exit status 1")
	runner := &fakeRunner{responses: []fakeResponse{
		{out: "scheduler busy", err: bootErr},
		{out: "scheduler busy", err: bootErr},
		{out: "Job <200> is submitted"},
	}}
	c, slept := newTestClient(runner)

	out, err := c.Submit(context.Background(), []string{"-n", "smk_test"})
	require.NoError(t, err)
	assert.Equal(t, "Job <200> is submitted", out)
	assert.Len(t, runner.calls, 3)

	// delay × attempt: 2s after the first failure, 4s after the second.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestSubmitExhaustedRetriesReturnsSubmitError(t *testing.T) {
	bootErr := errors.New("exit status 1")
	runner := &fakeRunner{responses: []fakeResponse{
		{out: "no license", err: bootErr},
		{out: "no license", err: bootErr},
		{out: "still no license", err: bootErr},
	}}
	c, slept := newTestClient(runner)

	out, err := c.Submit(context.Background(), []string{"-n", "smk_test", "-q", "fast"})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Len(t, runner.calls, 3)
	// No backoff after the final attempt.
	assert.Len(t, *slept, 2)

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.True(t, IsSubmitFailure(err))
	assert.Equal(t, "dsub -n smk_test -q fast", se.Command)
	assert.Equal(t, "still no license", se.Output)
	assert.ErrorIs(t, err, bootErr)
}

func TestSubmitContextCancelledDuringBackoff(t *testing.T) {
	runner := &fakeRunner{responses: []fakeResponse{
		{out: "busy", err: errors.New("exit status 1")},
	}}
	c := New(Config{}, nil).WithRunner(runner)
	c.sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	_, err := c.Submit(context.Background(), []string{"-n", "smk_test"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, runner.calls, 1)
}
