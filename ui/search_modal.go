package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	appmodel "ingredi/model"
)

func (a AppView) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		a.closeAllModals()
		return a, nil

	case "enter":
		if len(a.searchResults) == 0 {
			return a, nil
		}
		match := a.searchResults[a.selectedSearchIdx]
		a.closeAllModals()
		a.highlightedMessageIdx = match.MessageIndex
		a.highlightFlashCount = 1
		a.updateViewportContent(false)
		a.scrollToMessage(match.MessageIndex)
		return a, tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
			return flashTickMsg{}
		})

	case "down", a.keys.GetActionKey("scroll_down"):
		if a.selectedSearchIdx < len(a.searchResults)-1 {
			a.selectedSearchIdx++
			if a.selectedSearchIdx >= a.searchScrollIdx+a.visibleSearchResults() {
				a.searchScrollIdx++
			}
		}
		return a, nil

	case "up", a.keys.GetActionKey("scroll_up"):
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
			if a.selectedSearchIdx < a.searchScrollIdx {
				a.searchScrollIdx = a.selectedSearchIdx
			}
		}
		return a, nil
	}

	a.searchInput, cmd = a.searchInput.Update(msg)
	a.searchResults = appmodel.SearchFindings(a.dataModel.Messages(), strings.TrimSpace(a.searchInput.Value()))
	a.selectedSearchIdx = 0
	a.searchScrollIdx = 0
	return a, cmd
}

// scrollToMessage moves the viewport so message idx is near the top
func (a *AppView) scrollToMessage(idx int) {
	messages := a.dataModel.Messages()
	if idx < 0 || idx >= len(messages) {
		return
	}
	// Count rendered lines of the messages before idx
	offset := 0
	for i := 0; i < idx; i++ {
		offset += a.messageLineCount(messages[i])
	}
	a.viewport.SetYOffset(offset)
	a.log.Debug("scrolled to finding", zap.Int("message", idx), zap.Int("line", offset))
}

func (a *AppView) messageLineCount(msg appmodel.Message) int {
	if msg.Role == appmodel.RoleUser {
		return strings.Count(msg.Content, "\n") + 3
	}
	rendered, ok := a.rendered[msg.ID]
	if !ok {
		rendered = renderAICard(msg.AI, a.width, plainSection)
	}
	return strings.Count(rendered, "\n") + 3
}

func (a AppView) visibleSearchResults() int {
	// Border(2) + Padding(2) + Title(1) + Blank(1) + SearchInput(1) + Blank(1) +
	// "Found X matches:"(1) + Blank(1) + Footer(1) + Blank(1) = 12 lines
	available := a.height - 12 - 4
	visible := available / 3
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (a AppView) renderFindingSearch(width, height int) string {
	modalWidth := width - 4
	if modalWidth > 100 {
		modalWidth = 100
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("🔍 Search Findings")

	resultsView := ""
	if len(a.searchResults) == 0 {
		if a.searchInput.Value() == "" {
			resultsView = DimStyle.Render("No ingredient findings yet.")
		} else {
			resultsView = DimStyle.Render("No matches found")
		}
	} else {
		startIdx := a.searchScrollIdx
		endIdx := min(startIdx+a.visibleSearchResults(), len(a.searchResults))

		resultsView = fmt.Sprintf("Found %d findings:\n\n", len(a.searchResults))

		if startIdx > 0 {
			resultsView += DimStyle.Render(fmt.Sprintf("↑ %d more above\n\n", startIdx))
		}

		for i := startIdx; i < endIdx; i++ {
			match := a.searchResults[i]

			line := match.Finding.Name
			if badge := SeverityBadge(match.Finding.Severity); badge != "" {
				line += " " + badge
			}
			preview := match.Finding.WhatItIs
			if preview == "" {
				preview = match.Finding.WhyItIsUsed
			}
			matchText := line + "\n  " + DimStyle.Render(truncateMiddle(preview, modalWidth-10))

			if i == a.selectedSearchIdx {
				matchText = SelectedStyle.Render("> ") + matchText
			} else {
				matchText = "  " + matchText
			}

			resultsView += matchText + "\n\n"
		}

		if endIdx < len(a.searchResults) {
			resultsView += DimStyle.Render(fmt.Sprintf("↓ %d more below", len(a.searchResults)-endIdx))
		}
	}

	footer := FormatFooter("Type", "to search", "↑/↓", "Navigate", "Enter", "Jump", "Esc", "Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.searchInput.View(),
		"",
		resultsView,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}
