// Package logging builds the zap loggers used by stockroom. Log lines go to a
// dated file under the log directory, one file per day named dd-mm-yyyy.log,
// and optionally to a second writer such as stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileDateLayout names the daily log file.
const FileDateLayout = "02-01-2006"

// timeLayout stamps each log line.
const timeLayout = "02-01-2006 15:04:05"

// Options configures New.
type Options struct {
	Dir   string    // Directory for the daily log file; created if missing.
	Level string    // debug, info, warn or error. Empty means info.
	Echo  io.Writer // Optional second destination, e.g. os.Stderr.
	Now   func() time.Time
}

// FileName returns the daily log file name for t.
func FileName(t time.Time) string {
	return t.Format(FileDateLayout) + ".log"
}

// ParseLevel maps a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}

// encoderConfig renders "dd-mm-yyyy hh:mm:ss LEVEL message {fields}".
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New opens the daily log file and returns a logger writing to it. The
// returned close function flushes and closes the file.
func New(opts Options) (*zap.Logger, func() error, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName(now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(f), lvl)}
	if opts.Echo != nil {
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(opts.Echo), lvl))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
