package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger. An unknown level falls back to warn
// and is reported once the logger exists.
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: programName,
		Level:  log.WarnLevel,
	})

	if level == "" {
		return logger
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("ignoring invalid log level", "level", level)
		return logger
	}
	logger.SetLevel(parsed)
	return logger
}
