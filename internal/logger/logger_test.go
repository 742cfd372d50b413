package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_JSONFormatEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "json")

	log.Info().Str("symbol", "BTCUSDT").Msg("window analyzed")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"symbol":"BTCUSDT"`)
	assert.Contains(t, out, `"message":"window analyzed"`)
}

func TestNewWithWriter_LevelFiltersLowerEvents(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")

	log.Debug().Msg("not shown")
	log.Info().Msg("not shown either")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "shown")
}

func TestNewWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "chatty", "json")

	log.Debug().Msg("suppressed")
	log.Info().Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "kept")
}

func TestNewWithWriter_ConsoleFormatStaysHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "console")

	log.Info().Msg("console line")

	out := buf.String()
	assert.Contains(t, out, "console line")
	assert.NotContains(t, out, `"message"`)
}
