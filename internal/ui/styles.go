// Package ui holds terminal styling and the interactive profile picker.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// CLI style colors using lipgloss
var (
	// Active styles groups whose lines are uncommented
	Active = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // green

	// Inactive styles groups whose lines are commented out
	Inactive = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray

	// Warn styles warnings
	Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange

	// Muted styles secondary text such as line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Header styles section headers
	Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // blue bold
)

// Symbols for group states
const (
	SymbolActive    = "●"
	SymbolInactive  = "○"
	SymbolUnchanged = "·"
	SymbolWarn      = "⚠"
)

// RenderWarn renders a warning message with an orange symbol.
func RenderWarn(msg string) string {
	return Warn.Render(SymbolWarn) + " " + msg
}

// RenderLabel renders a dim label.
func RenderLabel(label string) string {
	return Muted.Render(label)
}
