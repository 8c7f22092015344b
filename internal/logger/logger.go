// Package logger builds the zerolog logger shared by the filter subsystem.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level     string
	Console   bool
	Component string
}

func Build(cfg Config, out io.Writer) zerolog.Logger {
	if out == nil {
		// the host protocol owns stdout, diagnostics go to stderr
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.MessageFieldName = "msg"

	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	base := zerolog.New(out)

	lvl := strings.ToLower(strings.TrimSpace(cfg.Level))
	switch lvl {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := base.With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	return ctx.Logger()
}
