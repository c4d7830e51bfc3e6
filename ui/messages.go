package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
)

// flashTickMsg advances the search highlight flash
type flashTickMsg struct{}

type tickMsg = spinner.TickMsg

// cardRenderedMsg carries the markdown rendering of one AI message
type cardRenderedMsg struct {
	MessageID string
	Width     int
	Rendered  string
}

// statusClearMsg clears a transient status line (e.g. "Copied")
type statusClearMsg struct {
	seq int
}
