package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{in: "", want: zerolog.WarnLevel},
		{in: "debug", want: zerolog.DebugLevel},
		{in: " INFO ", want: zerolog.InfoLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "disabled", want: zerolog.Disabled},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("category", "publisher").Msg("rolled back")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rolled back")
	assert.Contains(t, out, "category=publisher")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewJSON("debug", &buf)
	require.NoError(t, err)

	logger.Debug().Str("op", "create book").Msg("committed")

	line := buf.String()
	assert.Equal(t, "debug", gjson.Get(line, "level").String())
	assert.Equal(t, "create book", gjson.Get(line, "op").String())
	assert.Equal(t, "committed", gjson.Get(line, "message").String())
	assert.True(t, gjson.Get(line, "time").Exists())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewFormat(FormatJSON, "info", &buf)
		require.NoError(t, err)
		logger.Info().Str("op", "add").Msg("committed")
		assert.Equal(t, "add", gjson.Get(buf.String(), "op").String())
	})

	for _, format := range []string{"", FormatText, "TEXT"} {
		t.Run("text "+format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewFormat(format, "info", &buf)
			require.NoError(t, err)
			logger.Info().Str("op", "add").Msg("committed")
			assert.Contains(t, buf.String(), "op=add")
			assert.False(t, gjson.Valid(buf.String()))
		})
	}

	_, err := NewFormat("xml", "info", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
