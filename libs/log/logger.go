// Package log is the small logging layer behind the picocrypto CLI. The
// core crypto packages are pure functions and never log; the CLI is the
// only consumer, so the surface is limited to what its commands call.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger is the logging surface used by the CLI commands.
type Logger interface {
	// Error logs a message at level ERROR.
	Error(msg string, keyvals ...any)
	// Info logs a message at level INFO.
	Info(msg string, keyvals ...any)
	// Debug logs a message at level DEBUG.
	Debug(msg string, keyvals ...any)

	// With returns a new contextual logger with keyvals prepended to
	// those passed to calls to Info, Debug or Error.
	With(keyvals ...any) Logger
}

// Format selects the output encoding.
type Format string

const (
	// FormatPlain is colorized human-readable output.
	FormatPlain Format = "plain"
	// FormatJSON is one JSON object per line.
	FormatJSON Format = "json"
)

// ParseLevel maps a CLI flag value onto a slog level. The empty string
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (want debug, info or error)", s)
}

type logger struct {
	sl *slog.Logger
}

// Interface assertions.
var _ Logger = (*logger)(nil)

// New returns a Logger that writes to w, dropping records below level.
// Plain output is colorized with the tint handler; error values in keyvals
// render through tint.Err so they stand out.
//
// NOTE: w must be safe for concurrent use by multiple goroutines if the
// returned Logger will be used concurrently.
func New(w io.Writer, format Format, level slog.Level) (Logger, error) {
	var handler slog.Handler
	switch format {
	case FormatPlain:
		handler = tint.NewHandler(w, &tint.Options{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if err, ok := a.Value.Any().(error); ok {
					aErr := tint.Err(err)
					aErr.Key = a.Key
					return aErr
				}
				return a
			},
		})
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("unknown log format %q (want plain or json)", format)
	}
	return &logger{slog.New(handler)}, nil
}

// NewNop returns a Logger that discards everything. It is the default in
// the CLI until the flags are parsed.
func NewNop() Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})
	return &logger{slog.New(h)}
}

func (l *logger) Error(msg string, keyvals ...any) {
	l.sl.Error(msg, keyvals...)
}

func (l *logger) Info(msg string, keyvals ...any) {
	l.sl.Info(msg, keyvals...)
}

func (l *logger) Debug(msg string, keyvals ...any) {
	l.sl.Debug(msg, keyvals...)
}

func (l *logger) With(keyvals ...any) Logger {
	return &logger{l.sl.With(keyvals...)}
}
