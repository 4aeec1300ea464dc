// Package output renders user-facing terminal output: styled headings
// and errors for the CLI layer, and the tabular views the workflow
// tasks emit. Styling degrades to plain text on non-terminals.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Semantic colors
var (
	HeadingColor = lipgloss.Color("12")
	SuccessColor = lipgloss.Color("10")
	ErrorColor   = lipgloss.Color("9")
	WarningColor = lipgloss.Color("11")
	MutedColor   = lipgloss.Color("8")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// InitColors configures styling for the current run. Color is disabled
// when explicitly requested or when stdout is not a terminal.
func InitColors(noColor bool) {
	if noColor || !IsTerminal(os.Stdout) {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
	}
}

// Bold renders s in bold
func Bold(s string) string {
	return LabelStyle.Render(s)
}
