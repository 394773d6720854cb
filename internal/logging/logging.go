package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the process logger. "json" emits structured lines for log
// shippers; anything else gets the human console writer, since the CLI is
// mostly run by hand against a stack of claim files.
func Setup(format string) zerolog.Logger {
	if format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
