// Package donau drives the Donau batch scheduler through its command-line
// tools (dsub, djob, dkill).
//
// The package owns the scheduler-facing half of the executor:
//   - mapping resource requests onto dsub flags
//   - submitting jobs with bounded retry
//   - extracting the external job id from submission output
//   - the two-phase status query (active, then historical)
//   - best-effort bulk cancellation
//
// It knows nothing about workflow semantics; callers hand it fully built
// argument lists or id sets and interpret the results.
package donau

import (
	"context"
	"os/exec"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Runner executes one scheduler CLI invocation and returns its combined
// stdout/stderr. A non-nil error means the process could not be started or
// exited non-zero; the captured output is still returned for diagnostics.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config configures the scheduler client.
type Config struct {
	// SubmitCmd is the submission binary. Default: "dsub"
	SubmitCmd string

	// QueryCmd is the status query binary. Default: "djob"
	QueryCmd string

	// CancelCmd is the cancellation binary. Default: "dkill"
	CancelCmd string

	// Retries is the submission attempt budget. Default: 3
	Retries int

	// RetryDelay is the base backoff delay between submission attempts.
	// The actual delay grows linearly: RetryDelay × attempt number.
	// Default: 2s
	RetryDelay time.Duration

	// RateLimit is the maximum scheduler CLI invocations per second.
	// Zero means unlimited.
	// Default: 0
	RateLimit float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		SubmitCmd:  "dsub",
		QueryCmd:   "djob",
		CancelCmd:  "dkill",
		Retries:    3,
		RetryDelay: 2 * time.Second,
		RateLimit:  0,
	}
}

// Client talks to the Donau scheduler CLI.
//
// All methods are safe for concurrent use; the scheduler serializes
// conflicting operations on its own side, so no in-process locking is
// required beyond the optional rate limiter.
type Client struct {
	cfg    Config
	runner Runner
	log    *zap.Logger

	// Rate limiter (nil if unlimited)
	limiter *rate.Limiter

	// sleep is the backoff wait between submission attempts.
	// Replaced in tests to observe delays without real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a scheduler client. Zero-valued config fields fall back to
// DefaultConfig. A nil logger disables client logging.
func New(cfg Config, log *zap.Logger) *Client {
	def := DefaultConfig()
	if cfg.SubmitCmd == "" {
		cfg.SubmitCmd = def.SubmitCmd
	}
	if cfg.QueryCmd == "" {
		cfg.QueryCmd = def.QueryCmd
	}
	if cfg.CancelCmd == "" {
		cfg.CancelCmd = def.CancelCmd
	}
	if cfg.Retries <= 0 {
		cfg.Retries = def.Retries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		cfg:    cfg,
		runner: execRunner{},
		log:    log,
		sleep:  sleepContext,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// WithRunner overrides the process runner. Returns the client for chaining.
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

// wait blocks until the rate limiter allows the next CLI invocation.
// Returns immediately if rate limiting is disabled.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
