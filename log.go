package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog configures logging. By default all output is discarded so
// the TUI stays clean; set RELISTEN_LOGFILE to capture logs and
// RELISTEN_DEBUG for debug level.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	if os.Getenv("RELISTEN_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	if logFile := os.Getenv("RELISTEN_LOGFILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
		return f.Close, nil
	}

	return func() error { return nil }, nil
}
