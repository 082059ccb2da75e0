package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New creates a logger writing to w at the given level.
// An unparsable level falls back to info.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Console creates a human-readable logger for interactive commands
func Console(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(level, zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
}

// OpenFile creates a JSON logger appending to path, creating parent directories.
// The returned closer releases the file.
func OpenFile(level, path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(level, f), f, nil
}

// Component returns a child logger tagged with a component name
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
