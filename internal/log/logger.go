// Package log configures the structured logger used by chezmoi-toggle.
//
// Logs always go to stderr so that they never mix with file contents
// written to stdout.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = "text"
	// FormatJSON outputs logs in JSON format for machine parsing.
	FormatJSON Format = "json"
)

// Field keys shared by all log records.
const (
	PathKey   = "path"
	GroupKey  = "group"
	SyntaxKey = "syntax"
)

// Config holds the logging configuration.
type Config struct {
	// Level sets the minimum log level (debug, info, warn, error).
	// Default: warn
	Level string

	// Format sets the output format (text, json).
	// Default: text
	Format Format

	// Output is the writer for log output.
	// Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns the quiet configuration used by the CLI: only
// warnings and errors, as text on stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Format: FormatText,
		Output: os.Stderr,
	}
}

// FromEnv creates a Config from environment variables.
// Supported environment variables:
//   - CHEZMOI_TOGGLE_DEBUG: true/1 enables debug level (takes precedence)
//   - CHEZMOI_TOGGLE_LOG_LEVEL: debug, info, warn, error
//   - CHEZMOI_TOGGLE_LOG_FORMAT: text, json
func FromEnv() *Config {
	cfg := DefaultConfig()

	debug := os.Getenv("CHEZMOI_TOGGLE_DEBUG")
	if debug == "true" || debug == "1" {
		cfg.Level = "debug"
	} else if level := os.Getenv("CHEZMOI_TOGGLE_LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}

	if format := os.Getenv("CHEZMOI_TOGGLE_LOG_FORMAT"); format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}

	return cfg
}

// Validate checks the level and format names.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Level); !ok {
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.Level)
	}
	switch c.Format {
	case FormatText, FormatJSON, "":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Format)
	}
	return nil
}

// New creates a new structured logger from the given configuration.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, _ := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Setup installs the logger built from cfg as the process default.
func Setup(cfg *Config) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}
