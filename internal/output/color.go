package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles for report output.
type Styles struct {
	File      lipgloss.Style
	Separator lipgloss.Style
	OK        lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles creates the default color styles.
func NewStyles() Styles {
	return Styles{
		File:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")), // magenta
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // cyan
		OK:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // green
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		File:      lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
		OK:        lipgloss.NewStyle(),
		Warn:      lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
	}
}

// StylesFor resolves a color mode (auto, always, never) to styles.
// Anything unrecognized falls back to auto.
func StylesFor(mode string) Styles {
	switch mode {
	case "always":
		return NewStyles()
	case "never":
		return NoStyles()
	}
	if StdoutIsTerminal() {
		return NewStyles()
	}
	return NoStyles()
}

// StdoutIsTerminal returns true if stdout is attached to a terminal.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
