package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// maxLogSize is the size above which the log file is rotated on startup
const maxLogSize = 10 * 1024 * 1024

// setupLogging routes slog and the stdlib logger to path when debug is set,
// and discards everything otherwise. The terminal is owned by the dashboard,
// so nothing may reach stdout or stderr while it runs.
// The returned file is nil when logging is disabled or the file cannot be opened.
func setupLogging(debug bool, path, runID string) (*os.File, *slog.Logger) {
	if !debug || path == "" {
		return discardLogging()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return discardLogging()
		}
	}

	// Keep one previous generation
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discardLogging()
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if runID != "" {
		logger = logger.With("run", runID)
	}
	// SetDefault redirects the log package, so point it at the file afterwards
	slog.SetDefault(logger)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, logger
}

func discardLogging() (*os.File, *slog.Logger) {
	logger := slog.New(slog.DiscardHandler)
	slog.SetDefault(logger)
	log.SetOutput(io.Discard)
	return nil, logger
}

// newRunID tags every line of one run
func newRunID() string {
	return uuid.NewString()
}
