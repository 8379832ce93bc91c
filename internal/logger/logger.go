// Package logger builds the zap logger used across the client. Records below
// ERROR go to the primary sink and ERROR and above go to stderr; both can be
// mirrored to a log file.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string
	// Path, if set, also appends every record to this file.
	Path string
	// Out receives records below ERROR. Defaults to os.Stderr, since the CLI
	// reserves stdout for command output.
	Out io.Writer
	// Err receives ERROR and above. Defaults to os.Stderr.
	Err io.Writer
}

// New builds a logger from opts. The returned cleanup closes the log file,
// if one was opened, and flushes buffered records.
func New(opts Options) (*zap.Logger, func(), error) {
	if opts.Level == "" {
		opts.Level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = os.Stderr
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	var file *os.File
	if opts.Path != "" {
		file, err = os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = io.MultiWriter(out, file)
		errOut = io.MultiWriter(errOut, file)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return lvl.Enabled(l) && l < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return lvl.Enabled(l) && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(out), low),
		zapcore.NewCore(enc, zapcore.AddSync(errOut), high),
	)
	log := zap.New(core)

	cleanup := func() {
		_ = log.Sync()
		if file != nil {
			file.Close()
		}
	}
	return log, cleanup, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
