package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newLogger(os.Stdout, false))
}

// Init configures the process logger. Development mode switches to
// human-readable text output at debug level; everything else logs JSON at info.
func Init(development bool) {
	current.Store(newLogger(os.Stdout, development))
	Info("logger initialized", map[string]any{"development": development})
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer, development bool) {
	current.Store(newLogger(w, development))
}

func newLogger(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func Debug(msg string, fields map[string]any) {
	log(slog.LevelDebug, msg, fields)
}

func Info(msg string, fields map[string]any) {
	log(slog.LevelInfo, msg, fields)
}

func Warn(msg string, fields map[string]any) {
	log(slog.LevelWarn, msg, fields)
}

func Error(msg string, fields map[string]any) {
	log(slog.LevelError, msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	log(slog.LevelError, msg, fields)
	os.Exit(1)
}

func log(level slog.Level, msg string, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	current.Load().LogAttrs(context.Background(), level, msg, attrs...)
}
