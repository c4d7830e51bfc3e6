package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ingredi/provider"
)

// handleUIMessage handles view-only messages (flash, markdown, backend status, blink)
func (a AppView) handleUIMessage(msg tea.Msg) (AppView, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case flashTickMsg:
		if a.highlightFlashCount > 0 && a.highlightFlashCount < 6 {
			a.highlightFlashCount++
			a.updateViewportContent(false)
			return a, tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
				return flashTickMsg{}
			})
		}
		a.highlightedMessageIdx = -1
		a.highlightFlashCount = 0
		a.updateViewportContent(false)
		return a, nil

	case cardRenderedMsg:
		// Drop renders for a width the terminal no longer has
		if msg.Width != a.width {
			return a, nil
		}
		a.rendered[msg.MessageID] = msg.Rendered
		a.updateViewportContent(a.highlightedMessageIdx < 0)
		return a, nil

	case statusClearMsg:
		if msg.seq == a.statusSeq {
			a.statusFlash = ""
		}
		return a, nil

	case provider.PingBackendMsg:
		if msg.Valid {
			a.backendStatus = DimStyle.Render(fmt.Sprintf("● %s ready", msg.Backend))
			return a, nil
		}
		a.log.Warn("backend unreachable", zap.String("backend", msg.Backend), zap.Error(msg.Err))
		a.backendStatus = ErrorStyle.Render(fmt.Sprintf("● %s unreachable", msg.Backend))
		return a, nil
	}

	// Cursor blink and friends
	if a.showSearch {
		a.searchInput, cmd = a.searchInput.Update(msg)
		return a, cmd
	}
	if a.voiceState.Input.Focused() {
		a.voiceState.Input, cmd = a.voiceState.Input.Update(msg)
		return a, cmd
	}
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}
