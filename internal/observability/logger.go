package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the CLI console logger and installs it as the
// package-level zerolog logger. The CLI passes stderr so rendered output on
// stdout stays clean.
func InitLogger(out io.Writer, app, level string) zerolog.Logger {
	logger := NewLogger(out, app, level)
	log.Logger = logger
	return logger
}

// NewLogger writes human-readable log lines to out at the parsed level.
// Unknown levels fall back to info.
func NewLogger(out io.Writer, app, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stderr && out != os.Stdout,
	}
	return zerolog.New(output).
		Level(ParseLevel(level)).
		With().Timestamp().Str("app", app).
		Logger()
}

// ParseLevel maps a level name onto zerolog levels, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
