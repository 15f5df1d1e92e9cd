package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNewJSON_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON("warn", &buf)

	log.Info().Msg("dropped")
	log.Warn().Int("tick", 7).Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, float64(7), line["tick"])
	assert.Contains(t, line, "time")
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)
	log.Info().Str("faction", "blue").Msg("battle initialised")

	assert.Contains(t, buf.String(), "battle initialised")
	assert.Contains(t, buf.String(), "faction=")
}

func TestTee_WritesBoth(t *testing.T) {
	var console, file bytes.Buffer
	log := Tee("debug", &console, &file)
	log.Debug().Msg("frame")

	assert.Contains(t, console.String(), "frame")
	assert.Contains(t, file.String(), "frame")
	assert.NotContains(t, file.String(), "\x1b[")
}
