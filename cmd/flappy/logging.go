package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           lvl,
	})
	return logger, nil
}

// sessionLogger returns a logger for full-screen sessions. Logs go to
// --log-file when set and are discarded otherwise, so they never draw over
// the game. The returned close func must be called when done.
func sessionLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard, flagLogLevel)
		return logger, func() {}, err
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger, err := newLogger(f, flagLogLevel)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// consoleLogger returns a logger writing to stderr.
func consoleLogger() *log.Logger {
	logger, err := newLogger(os.Stderr, flagLogLevel)
	if err != nil {
		logger, _ = newLogger(os.Stderr, "info")
		logger.Warn("falling back to info level", "error", err)
	}
	return logger
}
