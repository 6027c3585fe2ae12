package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the run logger. Human-facing listings go to stdout;
// everything logged here goes to w (stderr in the CLI).
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "codet",
		Level:  level,
	})
}

// discardLogger is used when a caller passes a nil logger.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
