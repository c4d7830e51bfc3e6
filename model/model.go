package model

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTransitionWindow is how long IsTransitioning stays set after the first submit
const DefaultTransitionWindow = 350 * time.Millisecond

// Model holds the core application data and business logic state for one session
type Model struct {
	// Core dependencies
	Store   *ConversationStore
	Gateway *Gateway
	Log     *zap.Logger

	// TransitionWindow is the landing to chat handoff duration (0 = no window)
	TransitionWindow time.Duration

	mu              sync.Mutex
	view            ViewMode
	isTransitioning bool
	captureToken    int
	inflight        map[string]struct{}
	requestSeq      int

	// Application metadata
	Version string
}

// NewModel creates the single conversation owned by this process
func NewModel(gateway *Gateway, log *zap.Logger, version string) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		Store:            NewConversationStore(),
		Gateway:          gateway,
		Log:              log,
		TransitionWindow: DefaultTransitionWindow,
		view:             ViewLanding,
		inflight:         make(map[string]struct{}),
		Version:          version,
	}
}

// ConversationState is a consistent snapshot of the session
type ConversationState struct {
	Messages        []Message
	IsLoading       bool
	View            ViewMode
	IsTransitioning bool
}

// State returns a snapshot of the conversation
func (m *Model) State() ConversationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ConversationState{
		Messages:        m.Store.Snapshot(),
		IsLoading:       m.Store.IsLoading(),
		View:            m.view,
		IsTransitioning: m.isTransitioning,
	}
}

func (m *Model) View() ViewMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

func (m *Model) IsLoading() bool {
	return m.Store.IsLoading()
}

func (m *Model) IsTransitioning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isTransitioning
}

// Messages returns a snapshot of the message log
func (m *Model) Messages() []Message {
	return m.Store.Snapshot()
}
