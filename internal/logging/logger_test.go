package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn, false)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
	assert.False(t, logger.Enabled())
}

func TestLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "chatty", false)

	logger.Debug("nope")
	logger.Info("yes")

	assert.NotContains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "yes")
}

func TestLoggerWithCarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug, true).With("chart", "gantt", 42, "ignored")

	logger.Debug("rendered", "entered", 3)

	line := strings.TrimSpace(buf.String())
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "gantt", record["chart"])
	assert.Equal(t, float64(3), record["entered"])
	assert.Equal(t, "rendered", record["msg"])
	assert.True(t, logger.Enabled())
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("dropped")
	assert.Same(t, logger, logger.With())
}
