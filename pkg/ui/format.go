// Package ui decides how search results should be presented based on
// the output destination's capabilities.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatTerminal renders colorized output
	FormatTerminal Format = iota
	// FormatText renders plain text output without any styling
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "term"
	default:
		return "text"
	}
}

// DetectFormat determines the appropriate output format based on
// environment and terminal capabilities.
func DetectFormat(output *os.File) Format {
	// NO_COLOR always wins
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Piped or redirected output gets plain text
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
