package log_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picops/picocrypto/libs/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"error", slog.LevelError, false},
		{"warn", 0, true},
		{"trace", 0, true},
	}
	for _, tt := range tests {
		lvl, err := log.ParseLevel(tt.in)
		if tt.wantErr {
			require.Error(t, err, "%q", tt.in)
			continue
		}
		require.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, lvl)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.New(&buf, log.FormatJSON, slog.LevelInfo)
	require.NoError(t, err)

	logger.Info("hashed message", "algo", "keccak256")
	out := buf.String()
	assert.Contains(t, out, `"msg":"hashed message"`)
	assert.Contains(t, out, `"algo":"keccak256"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.New(&buf, log.FormatJSON, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("dropped")
	assert.Empty(t, buf.String())

	logger.Info("kept")
	assert.Contains(t, buf.String(), "kept")

	buf.Reset()
	debugLogger, err := log.New(&buf, log.FormatJSON, slog.LevelDebug)
	require.NoError(t, err)
	debugLogger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.New(&buf, log.FormatJSON, slog.LevelInfo)
	require.NoError(t, err)

	logger.With("component", "cli").Error("boom", "err", errors.New("bad input"))
	assert.Contains(t, buf.String(), `"component":"cli"`)
	assert.Contains(t, buf.String(), "bad input")
}

func TestPlainFormatWrites(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.New(&buf, log.FormatPlain, slog.LevelInfo)
	require.NoError(t, err)

	logger.Info("careful", "key", "value")
	assert.Contains(t, buf.String(), "careful")
}

func TestUnknownFormat(t *testing.T) {
	_, err := log.New(&bytes.Buffer{}, log.Format("yaml"), slog.LevelInfo)
	require.Error(t, err)
}

func TestNopLoggerSilent(t *testing.T) {
	logger := log.NewNop()
	logger.Error("ignored")
	logger.With("k", "v").Info("also ignored")
	logger.Debug("and this")
}
