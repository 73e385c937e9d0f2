package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSinkLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewSink(zap.New(core))

	sink.Log("WARNING", "tried to add empty named product")
	sink.Log("error", "failed to load file")
	sink.Log("DEBUG", "loaded 3 products")
	sink.Log("NOTICE", "falls back to info")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "tried to add empty named product", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestSinkRespectsLoggerLevel(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := NewSink(zap.New(core))

	sink.Log("INFO", "dropped")
	sink.Log("ERROR", "kept")

	assert.Equal(t, 1, logs.Len())
}
