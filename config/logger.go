package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger configures the zerolog logger. Format is "console" or "json";
// anything else falls back to console.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"`
}

func (c Logger) ZerologLevel() zerolog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds the logger. Output must not be stdout: the report owns it.
func (c Logger) New(out io.Writer) zerolog.Logger {
	if strings.ToLower(c.Format) == "json" {
		return zerolog.New(out).Level(c.ZerologLevel()).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(c.ZerologLevel()).With().Timestamp().Logger()
}
