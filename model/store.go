package model

import (
	"sync"
)

// ConversationStore owns the ordered message log and the loading flag.
// All mutations are serialized; callers only ever see copies of the log.
type ConversationStore struct {
	mu       sync.Mutex
	messages []Message
	pending  int
}

// NewConversationStore creates an empty store for one session
func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// Append adds msg to the end of the log and returns a snapshot of the new log
func (s *ConversationStore) Append(msg Message) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(msg)
	return s.snapshotLocked()
}

func (s *ConversationStore) appendLocked(msg Message) {
	msg = msg.clone()
	// Timestamps never go backwards: new messages always append after the last one
	if n := len(s.messages); n > 0 && msg.Timestamp.Before(s.messages[n-1].Timestamp) {
		msg.Timestamp = s.messages[n-1].Timestamp
	}
	s.messages = append(s.messages, msg)
}

// SetLoading toggles the loading flag. true marks one request as outstanding,
// false clears every outstanding request.
func (s *ConversationStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loading {
		if s.pending == 0 {
			s.pending = 1
		}
		return
	}
	s.pending = 0
}

// BeginRequest records that a gateway call has been issued
func (s *ConversationStore) BeginRequest() {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
}

// CompleteRequest appends the resulting AI message and retires one outstanding
// request in a single critical section.
func (s *ConversationStore) CompleteRequest(msg Message) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(msg)
	if s.pending > 0 {
		s.pending--
	}
	return s.snapshotLocked()
}

// IsLoading reports whether at least one request is outstanding
func (s *ConversationStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// Pending returns the number of outstanding requests
func (s *ConversationStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Snapshot returns a copy of the log
func (s *ConversationStore) Snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *ConversationStore) snapshotLocked() []Message {
	out := make([]Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.clone()
	}
	return out
}

func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *ConversationStore) IsEmpty() bool {
	return s.Len() == 0
}

// Last returns the most recent message, if any
func (s *ConversationStore) Last() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1].clone(), true
}

// LastAI returns the most recent AI message, if any
func (s *ConversationStore) LastAI() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAI {
			return s.messages[i].clone(), true
		}
	}
	return Message{}, false
}
