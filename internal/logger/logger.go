// Package logger configures diagnostic logging. Logs go to stderr; stdout is
// reserved for the report itself.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable lines to stderr.
// When verbose is false the logger discards everything.
func New(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
