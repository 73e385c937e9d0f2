package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink accepts leveled text messages. Level names are case-insensitive:
// DEBUG, INFO, WARNING (or WARN), ERROR. Unknown levels log at info.
type Sink interface {
	Log(level, message string)
}

// zapSink adapts a zap logger to Sink.
type zapSink struct {
	logger *zap.Logger
}

// NewSink returns a Sink writing through logger.
func NewSink(logger *zap.Logger) Sink {
	return zapSink{logger: logger}
}

func (s zapSink) Log(level, message string) {
	if ce := s.logger.Check(sinkLevel(level), message); ce != nil {
		ce.Write()
	}
}

func sinkLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARNING", "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
