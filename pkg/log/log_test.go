package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON("warn", &buf)

	logger.Debug().Msg("hidden")
	logger.Warn().Str(OperationKey, "fit").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, `"operation":"fit"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New("not-a-level", &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNopEmitsNothing(t *testing.T) {
	logger := Nop()
	logger.Info().Int(FoldKey, 1).Msg("dropped")
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
