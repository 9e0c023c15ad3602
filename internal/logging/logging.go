// Package logging sets up the process-wide structured logger.
//
// The TUI owns the terminal, so records go to a file (or nowhere) rather than
// stderr while a picker is on screen.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
)

type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json
	// File receives the records; empty discards them unless Stderr is set.
	File   string
	Stderr bool
}

// Setup installs the default logger and returns a closer for the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	switch {
	case strings.TrimSpace(opts.File) != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case opts.Stderr:
		w = os.Stderr
	}

	l := New(w, opts.Level, opts.Format)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	return l, closer, nil
}

// New builds a logger writing to w without touching the default.
func New(w io.Writer, level, format string) *slog.Logger {
	ho := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the default logger; before Setup it discards everything.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.DiscardHandler)
	}
	return defaultLogger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
