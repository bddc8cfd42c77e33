// Package observability constructs the process logger. The logger is built
// once at startup and handed explicitly to every component; there is no
// package-global mutable logging state, so multiple executor instances can
// coexist in one process without reconfiguration races.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	// Level is the console log level ("debug", "info", "warn", "error").
	Level string

	// File is the rotating operational log path. Empty disables the file
	// sink. The file sink always records at debug level for post-mortem
	// diagnosis, independent of the console level.
	File string

	// MaxSizeMB is the rotation threshold. Default: 10
	MaxSizeMB int

	// MaxAgeDays is the retention window. Default: 7
	MaxAgeDays int
}

// NewLogger builds a logger with a console core on stderr and an optional
// rotating file core.
func NewLogger(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = 7
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	if opts.File != "" {
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  opts.MaxSizeMB,
			MaxAge:   opts.MaxAgeDays,
			Compress: false,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			fileSink,
			zapcore.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
