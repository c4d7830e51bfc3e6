package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ingredi/model"
)

var (
	dimColor       = lipgloss.Color("7")
	accentColor    = lipgloss.Color("12")
	successColor   = lipgloss.Color("10")
	warningColor   = lipgloss.Color("11")
	dangerColor    = lipgloss.Color("9")
	highlightColor = lipgloss.Color("13")

	// User message style
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
	// NO .Background() = transparent!

	// AI message style
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	// Finding card pieces
	IngredientNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Italic(true)

	GreetingStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)
)

// severityColors maps each severity to its badge color
var severityColors = map[model.Severity]lipgloss.Color{
	model.SeverityLow:    successColor,
	model.SeverityMedium: warningColor,
	model.SeverityHigh:   dangerColor,
}

// SeverityBadge renders "[HIGH]" style badges. No severity renders nothing.
func SeverityBadge(s model.Severity) string {
	if s == model.SeverityNone {
		return ""
	}
	color, ok := severityColors[s]
	if !ok {
		color = dimColor
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render("[" + s.Label() + "]")
}

// FormatFooter formats a footer string with alternating keys and descriptions.
// Keys remain default color, descriptions are rendered in accent blue+bold.
// Usage: FormatFooter("j/k", "Navigate", "Enter", "Select", "Esc", "Close")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}

// formatStatusBar is the main screen variant of FormatFooter (user green)
func formatStatusBar(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	var result []string
	for i := 0; i+1 < len(parts); i += 2 {
		if parts[i] == "" {
			continue
		}
		result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
	}
	return StatusStyle.Render(strings.Join(result, "  "))
}
