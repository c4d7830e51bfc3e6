package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ViewMode is a state of the view controller
type ViewMode string

const (
	ViewLanding       ViewMode = "landing"
	ViewChat          ViewMode = "chat"
	ViewCaptureCamera ViewMode = "captureCamera"
	ViewCaptureVoice  ViewMode = "captureVoice"
)

// IsCapture reports whether the view is one of the capture overlays
func (v ViewMode) IsCapture() bool {
	return v == ViewCaptureCamera || v == ViewCaptureVoice
}

// Submit handles typed input. Blank input is rejected, as is a follow-up
// while a request is outstanding. Returns nil when nothing was submitted.
func (m *Model) Submit(text string) tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		m.Log.Debug("submit rejected: blank input", zap.String("view", string(m.view)))
		return nil
	}

	switch m.view {
	case ViewLanding:
		return m.submitLocked(text)
	case ViewChat:
		if m.Store.IsLoading() {
			m.Log.Debug("submit rejected: request outstanding")
			return nil
		}
		return m.submitLocked(text)
	default:
		m.Log.Debug("submit rejected: capture overlay open", zap.String("view", string(m.view)))
		return nil
	}
}

// OpenCamera opens the camera overlay from landing or chat
func (m *Model) OpenCamera() bool {
	return m.openCapture(ViewCaptureCamera)
}

// OpenVoice opens the voice overlay from landing or chat
func (m *Model) OpenVoice() bool {
	return m.openCapture(ViewCaptureVoice)
}

func (m *Model) openCapture(target ViewMode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.view != ViewLanding && m.view != ViewChat {
		m.Log.Debug("open capture rejected", zap.String("view", string(m.view)), zap.String("target", string(target)))
		return false
	}
	m.view = target
	m.captureToken++
	return true
}

// CaptureToken identifies the currently open capture overlay. Results carrying
// an older token belong to an overlay that has since been closed.
func (m *Model) CaptureToken() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captureToken
}

// CaptureComplete hands captured text to the submit pipeline. The log's
// emptiness decides whether this is the first message; both cases share one path.
func (m *Model) CaptureComplete(text string) tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.view.IsCapture() {
		m.Log.Debug("capture complete ignored: no overlay open", zap.String("view", string(m.view)))
		return nil
	}
	m.view = m.restingViewLocked()

	text = strings.TrimSpace(text)
	if text == "" {
		m.Log.Debug("capture complete rejected: blank text")
		return nil
	}
	if !m.Store.IsEmpty() && m.Store.IsLoading() {
		m.Log.Debug("capture complete rejected: request outstanding")
		return nil
	}
	return m.submitLocked(text)
}

// CloseOverlay leaves a capture overlay for landing (empty log) or chat
func (m *Model) CloseOverlay() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.view.IsCapture() {
		return false
	}
	m.view = m.restingViewLocked()
	return true
}

// Complete appends the AI message for a finished request and reconciles the view.
// Completions for unknown or already-completed requests are dropped.
func (m *Model) Complete(msg AnalysisCompleteMsg) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inflight[msg.RequestID]; !ok {
		m.Log.Warn("completion for unknown request dropped", zap.String("request", msg.RequestID))
		return false
	}
	delete(m.inflight, msg.RequestID)

	m.Store.CompleteRequest(NewAIMessage(msg.Payload))
	if !m.view.IsCapture() {
		m.view = ViewChat
	}
	return true
}

// Apply routes core messages produced by commands back into the controller.
// It returns any follow-up command.
func (m *Model) Apply(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AnalysisCompleteMsg:
		m.Complete(msg)
	case CaptureCompleteMsg:
		if msg.Token != m.CaptureToken() {
			m.Log.Debug("stale capture result dropped", zap.String("source", string(msg.Source)))
			return nil
		}
		return m.CaptureComplete(msg.Text)
	case CaptureFailedMsg:
		m.Log.Debug("capture failed", zap.String("source", string(msg.Source)), zap.Error(msg.Err))
	case TransitionDoneMsg:
		m.mu.Lock()
		m.isTransitioning = false
		m.mu.Unlock()
	}
	return nil
}

// restingViewLocked is where the controller settles outside the overlays
func (m *Model) restingViewLocked() ViewMode {
	if m.Store.IsEmpty() {
		return ViewLanding
	}
	return ViewChat
}

// submitLocked appends the user message, switches to chat and starts the
// analyze pipeline. The first message of a session opens the transition window.
func (m *Model) submitLocked(text string) tea.Cmd {
	first := m.Store.IsEmpty()

	m.Store.Append(NewUserMessage(text))
	m.view = ViewChat

	m.requestSeq++
	requestID := fmt.Sprintf("req-%d", m.requestSeq)
	m.inflight[requestID] = struct{}{}
	m.Store.BeginRequest()

	m.Log.Debug("submit accepted",
		zap.String("request", requestID),
		zap.Bool("first", first),
		zap.Int("chars", len(text)))

	analyze := m.analyzeCmd(requestID, text)
	if !first {
		return analyze
	}

	if m.TransitionWindow <= 0 {
		return analyze
	}
	m.isTransitioning = true
	return tea.Batch(analyze, tea.Tick(m.TransitionWindow, func(time.Time) tea.Msg {
		return TransitionDoneMsg{}
	}))
}

func (m *Model) analyzeCmd(requestID, text string) tea.Cmd {
	gateway := m.Gateway
	return func() tea.Msg {
		var payload AIPayload
		if gateway == nil {
			payload = ErrorPayload()
		} else {
			payload = gateway.Analyze(context.Background(), text)
		}
		return AnalysisCompleteMsg{RequestID: requestID, Payload: payload}
	}
}

// Drain runs cmd and every follow-up command to completion outside a bubbletea
// program, applying results in completion order. Used by the headless CLI.
func (m *Model) Drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	results := make(chan tea.Msg)
	running := 0
	var start func(c tea.Cmd)
	start = func(c tea.Cmd) {
		if c == nil {
			return
		}
		running++
		go func() { results <- c() }()
	}
	start(cmd)

	for running > 0 {
		msg := <-results
		running--
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				start(c)
			}
		case nil:
		default:
			start(m.Apply(msg))
		}
	}
}
