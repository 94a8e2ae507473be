package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("info", FormatJSON, &buf)
		require.NoError(t, err)

		logger.Info().Str("device", "R1").Msg("hello")
		assert.Contains(t, buf.String(), `"device":"R1"`)
		assert.Contains(t, buf.String(), `"message":"hello"`)
	})

	t.Run("level filters lower events", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("warn", FormatJSON, &buf)
		require.NoError(t, err)

		logger.Info().Msg("dropped")
		assert.Empty(t, buf.String())
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("debug", FormatConsole, &buf)
		require.NoError(t, err)

		logger.Debug().Msg("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("empty level defaults to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("", FormatJSON, &buf)
		require.NoError(t, err)

		logger.Debug().Msg("dropped")
		logger.Info().Msg("kept")
		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New("loud", FormatJSON, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New("info", "xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
