package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ASCIIArt = `  _                          _ _
 (_)_ __   __ _ _ __ ___  __| (_)
 | | '_ \ / _` + "`" + ` | '__/ _ \/ _` + "`" + ` | |
 | | | | | (_| | | |  __/ (_| | |
 |_|_| |_|\__, |_|  \___|\__,_|_|
          |___/`

var Features = []string{
	"• Paste or type an ingredient list",
	"• Scan a label photo with the camera",
	"• Dictate ingredients by voice",
	"• Ask follow-up questions in chat",
}

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	featureStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	taglineStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	composerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func (a AppView) renderLanding() string {
	var sb strings.Builder

	for _, line := range strings.Split(ASCIIArt, "\n") {
		sb.WriteString(logoStyle.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(taglineStyle.Render("What's in this, and should I care?"))
	sb.WriteString("\n\n")

	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(composerStyle.Render(a.textarea.View()))
	sb.WriteString("\n\n")

	sb.WriteString(formatStatusBar(
		"Enter", "Analyze",
		a.keys.DisplayActionKey("open_camera"), "Camera",
		a.keys.DisplayActionKey("open_voice"), "Voice",
		a.keys.DisplayActionKey("help"), "Help",
		a.keys.DisplayActionKey("quit"), "Quit",
	))

	if a.backendStatus != "" {
		sb.WriteString("\n\n")
		sb.WriteString(a.backendStatus)
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, sb.String())
}
