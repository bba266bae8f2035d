// Package logging installs a charmbracelet/log logger as the slog handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Options configure New.
type Options struct {
	// Level is debug, info, warn or error.
	Level string
	// Format is text, json or logfmt.
	Format string
	Output io.Writer
	Prefix string
	// Timestamps adds an RFC3339 time to every record.
	Timestamps bool
}

// New builds a slog logger backed by charmbracelet/log.
func New(opts Options) (*slog.Logger, error) {
	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// NewHandler returns the charmbracelet/log logger, which implements
// slog.Handler.
func NewHandler(opts Options) (*charmlog.Logger, error) {
	level := charmlog.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := charmlog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return nil, fmt.Errorf("logging: level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	formatter, err := parseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return charmlog.NewWithOptions(out, charmlog.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
	}), nil
}

// Install builds the logger and makes it the process default for both slog
// and charmbracelet/log.
func Install(opts Options) (*slog.Logger, error) {
	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}
	charmlog.SetDefault(handler)
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func parseFormat(raw string) (charmlog.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text":
		return charmlog.TextFormatter, nil
	case "json":
		return charmlog.JSONFormatter, nil
	case "logfmt":
		return charmlog.LogfmtFormatter, nil
	default:
		return charmlog.TextFormatter, fmt.Errorf("logging: unknown format %q", raw)
	}
}
