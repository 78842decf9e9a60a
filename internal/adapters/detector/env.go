// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// LogFormat represents how log records are rendered.
type LogFormat int

const (
	// FormatAuto picks a format from the environment.
	FormatAuto LogFormat = iota
	// FormatPretty forces human-readable output.
	FormatPretty
	// FormatJSON forces one JSON object per record.
	FormatJSON
)

// DetectEnvironment returns the recommended log format based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ParseFormat converts a --log-format value. The empty string means auto.
func ParseFormat(s string) (LogFormat, error) {
	switch s {
	case "auto", "":
		return FormatAuto, nil
	case "pretty", "text":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, domain.Tag(domain.ErrConfig, zerr.With(zerr.New("unknown log format"), "log_format", s))
	}
}

// ResolveFormat applies the user choice to the auto-detected format.
func ResolveFormat(autoDetected, requested LogFormat) LogFormat {
	if requested == FormatAuto {
		return autoDetected
	}
	return requested
}
