// Package style defines the lipgloss styles used for fd's own
// messages (errors, hints, headings). Search results themselves are
// styled by pkg/render from the LS_COLORS table, not from here.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	HeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
)

// Error formats a fatal error message
func Error(s string) string {
	return ErrorStyle.Render("Error:") + " " + s
}

// Hint formats a secondary hint line
func Hint(s string) string {
	return HintStyle.Render(s)
}
