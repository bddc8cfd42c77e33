// Package config loads executor configuration with the precedence
// defaults < config file < environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved executor configuration.
type Config struct {
	Scheduler SchedulerConfig
	Submit    SubmitConfig
	Poll      PollConfig
	Logging   LoggingConfig

	// LogRoot is the directory per-job logs are written under.
	LogRoot string

	// RegistryRoot is the tracked-job registry directory.
	RegistryRoot string

	// WorkDir is the working directory passed to remote jobs.
	WorkDir string
}

// SchedulerConfig names the Donau CLI binaries.
type SchedulerConfig struct {
	SubmitCmd string
	QueryCmd  string
	CancelCmd string
}

// SubmitConfig bounds the submission retry discipline.
type SubmitConfig struct {
	Retries    int
	RetryDelay time.Duration
}

// PollConfig drives the status poll cadence.
type PollConfig struct {
	// Interval is the fixed cadence between poll cycles.
	Interval time.Duration

	// Timeout bounds one poll cycle, covering both djob phases.
	Timeout time.Duration

	// InitialDelay is the wait between submission and the first status
	// check, giving the scheduler time to register the job.
	InitialDelay time.Duration

	// RateLimit caps scheduler CLI invocations per second. Zero means
	// unlimited.
	RateLimit float64
}

// LoggingConfig configures the operational log.
type LoggingConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxAgeDays int
}

// Load resolves the configuration. An optional donau.yaml in the working
// directory is honored; environment variables use the DONAU_ prefix with
// underscores for nesting (e.g. DONAU_POLL_INTERVAL=30s).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("scheduler.submit_cmd", "dsub")
	v.SetDefault("scheduler.query_cmd", "djob")
	v.SetDefault("scheduler.cancel_cmd", "dkill")
	v.SetDefault("submit.retries", 3)
	v.SetDefault("submit.retry_delay", "2s")
	v.SetDefault("poll.interval", "10s")
	v.SetDefault("poll.timeout", "1m")
	v.SetDefault("poll.initial_delay", "5s")
	v.SetDefault("poll.rate_limit", 0.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "donau_executor.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_age_days", 7)
	v.SetDefault("log_root", ".snakemake/donau_logs")
	v.SetDefault("registry_root", ".snakemake/donau_jobs")
	v.SetDefault("work_dir", ".")

	v.SetConfigName("donau")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("DONAU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Scheduler: SchedulerConfig{
			SubmitCmd: v.GetString("scheduler.submit_cmd"),
			QueryCmd:  v.GetString("scheduler.query_cmd"),
			CancelCmd: v.GetString("scheduler.cancel_cmd"),
		},
		Submit: SubmitConfig{
			Retries:    v.GetInt("submit.retries"),
			RetryDelay: v.GetDuration("submit.retry_delay"),
		},
		Poll: PollConfig{
			Interval:     v.GetDuration("poll.interval"),
			Timeout:      v.GetDuration("poll.timeout"),
			InitialDelay: v.GetDuration("poll.initial_delay"),
			RateLimit:    v.GetFloat64("poll.rate_limit"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("logging.level"),
			File:       v.GetString("logging.file"),
			MaxSizeMB:  v.GetInt("logging.max_size_mb"),
			MaxAgeDays: v.GetInt("logging.max_age_days"),
		},
		LogRoot:      v.GetString("log_root"),
		RegistryRoot: v.GetString("registry_root"),
		WorkDir:      v.GetString("work_dir"),
	}

	if cfg.Submit.Retries < 1 {
		return nil, fmt.Errorf("submit.retries must be at least 1")
	}
	if cfg.Poll.Interval <= 0 {
		return nil, fmt.Errorf("poll.interval must be positive")
	}

	return cfg, nil
}
