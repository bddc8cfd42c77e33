package donau

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Submit runs one dsub invocation synchronously and returns its trimmed
// combined output. Submission is blocking by design: the caller cannot
// learn the external job id before the process exits.
//
// On non-zero exit the invocation is retried up to the configured budget
// with linear backoff (RetryDelay × attempt number). Only the process
// invocation is retried; the output is never inspected between attempts.
// Exhausting the budget returns a *SubmitError carrying the command line
// and the last captured output.
func (c *Client) Submit(ctx context.Context, args []string) (string, error) {
	var lastOut []byte
	var lastErr error

	for attempt := 1; attempt <= c.cfg.Retries; attempt++ {
		if err := c.wait(ctx); err != nil {
			return "", err
		}

		out, err := c.runner.Run(ctx, c.cfg.SubmitCmd, args...)
		if err == nil {
			return strings.TrimSpace(string(out)), nil
		}
		lastOut, lastErr = out, err

		if attempt == c.cfg.Retries {
			break
		}

		delay := c.cfg.RetryDelay * time.Duration(attempt)
		c.log.Warn("submission attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))
		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", &SubmitError{
		Command: commandLine(c.cfg.SubmitCmd, args),
		Output:  strings.TrimSpace(string(lastOut)),
		Err:     lastErr,
	}
}
