package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("slots computed: %d", 3)
	assert.Empty(t, buf.String())

	log.Warn("captain id=%s hibernating", "abc")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "captain id=abc hibernating")
}

func TestParseLevel(t *testing.T) {
	_, err := parseLevel("verbose")
	assert.Error(t, err)

	lvl, err := parseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "debug", lvl.String())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored %v", 1)
	assert.NoError(t, log.Close())
}
