// Package sysutil holds process-level helpers shared by the CLI commands:
// global logger setup and small environment parsing utilities.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogLevel configures the global zerolog level from a string value and
// returns the level applied. Unknown or empty values fall back to info;
// "warning" is accepted as an alias for warn.
func SetLogLevel(lvl string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// NewLogger builds a timestamped logger writing to w. Output is a
// human-readable console format when pretty is set or w is a terminal, and
// JSON lines otherwise. NO_COLOR disables colors in console mode.
func NewLogger(w io.Writer, pretty bool) zerolog.Logger {
	if pretty || isTerminal(w) {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    IsTruthy(os.Getenv("NO_COLOR")) || !isTerminal(w),
		}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetupLogging applies level and output format to the global logger.
func SetupLogging(w io.Writer, level string, pretty bool) {
	SetLogLevel(level)
	log.Logger = NewLogger(w, pretty)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTruthy reports whether an environment variable string should be considered true.
// Accepted values (case-insensitive): "1", "true", "yes", "y", "on".
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// FirstNonEmpty returns the first value that is not blank, trimmed.
// If all values are blank, it returns "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
