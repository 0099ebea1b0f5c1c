package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Options builds structured logger options for the named level
func Options(level string) pslog.Options {
	opts := pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	}
	switch strings.ToLower(level) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}

// Open creates a logger writing to file, appending. The UI owns the
// terminal, so an empty file discards everything.
func Open(file, level string) (pslog.Logger, io.Closer, error) {
	if file == "" {
		return Discard(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f, nil
}

// New creates a structured logger on w
func New(w io.Writer, level string) pslog.Logger {
	return pslog.NewWithOptions(w, Options(level))
}

// Discard returns a logger that drops everything
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, Options("error"))
}
