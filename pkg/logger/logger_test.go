package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thscraper/pkg/config"
)

func TestNew(t *testing.T) {
	l, err := New(&config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "fatal", "disabled"} {
		_, err := parseLogLevel(level)
		assert.NoError(t, err, level)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestTestLoggerCapturesFields(t *testing.T) {
	tl := NewTestLogger()

	tl.WithField("uid", "holiday-giveaways").Warn("pagination exhausted")
	tl.InfoWithFields("chunk processed", map[string]interface{}{"chunk": 2})

	entries := tl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "holiday-giveaways", entries[0].Fields["uid"])
	assert.Equal(t, 2, entries[1].Fields["chunk"])
}
