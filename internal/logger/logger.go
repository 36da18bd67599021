// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-formatted logger writing to stderr.
func New() zerolog.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Logger()
}
