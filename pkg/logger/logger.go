// Package logger constructs the service's root zerolog logger. Every
// component derives its own tagged logger from the one built here.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls log output
type Config struct {
	Level  string // zerolog level name; unknown values fall back to info
	Pretty bool   // Human-readable console output for dev mode
}

// New creates the root logger
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger routes zerolog's package-level logger through l so that
// stray log.Info() calls in dependencies share the service's output.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
