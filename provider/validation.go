package provider

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ingredi/model"
)

// PingBackendMsg is sent when a backend ping completes
type PingBackendMsg struct {
	Backend string
	Valid   bool
	Err     error
}

// PingBackend checks reachability of the configured backend in the background.
// A failed ping is informational only: requests still go out and fail into
// the error payload.
func PingBackend(a model.Analyzer) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return PingBackendMsg{Backend: "offline", Valid: false}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.Ping(ctx); err != nil {
			return PingBackendMsg{Backend: a.Name(), Valid: false, Err: err}
		}
		return PingBackendMsg{Backend: a.Name(), Valid: true}
	}
}
