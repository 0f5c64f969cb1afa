package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		" Info ":  LogLevelInfo,
		"DEBUG":   LogLevelDebug,
		"trace":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestLogger_With(t *testing.T) {
	logger := NewLoggerWithFormat(LogLevelDebug, "json")
	child := logger.With("run_id", "abc")

	assert.Equal(t, LogLevelDebug, child.GetLevel())
	assert.NotPanics(t, func() {
		child.Debug("rows=%d", 3)
		child.Trace("hidden")
	})
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.NotPanics(t, func() {
		logger.Error("boom: %v", assert.AnError)
		logger.Sync()
	})
}
