package model

import (
	"sync"
	"testing"
	"time"
)

func TestConversationStore_AppendOrder(t *testing.T) {
	s := NewConversationStore()

	s.Append(NewUserMessage("first"))
	s.Append(NewAIMessage(AIPayload{OverallConclusion: "ok"}))
	snap := s.Append(NewUserMessage("second"))

	if len(snap) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(snap))
	}
	if snap[0].Content != "first" || snap[2].Content != "second" {
		t.Errorf("unexpected order: %q, %q", snap[0].Content, snap[2].Content)
	}
	if snap[1].Role != RoleAI || snap[1].AI == nil {
		t.Errorf("expected AI message at index 1, got %+v", snap[1])
	}
}

func TestConversationStore_TimestampsMonotonic(t *testing.T) {
	s := NewConversationStore()

	later := NewUserMessage("later")
	earlier := NewUserMessage("earlier")
	earlier.Timestamp = later.Timestamp.Add(-time.Hour)

	s.Append(later)
	snap := s.Append(earlier)

	if snap[1].Timestamp.Before(snap[0].Timestamp) {
		t.Errorf("timestamp went backwards: %v < %v", snap[1].Timestamp, snap[0].Timestamp)
	}
}

func TestConversationStore_SnapshotIsolation(t *testing.T) {
	s := NewConversationStore()
	s.Append(NewAIMessage(AIPayload{Ingredients: []IngredientFinding{{Name: "Salt"}}}))

	snap := s.Snapshot()
	snap[0].AI.Ingredients[0].Name = "mutated"
	snap[0].AI.OverallConclusion = "mutated"

	again := s.Snapshot()
	if again[0].AI.Ingredients[0].Name != "Salt" {
		t.Errorf("snapshot shares ingredient slice with the store")
	}
	if again[0].AI.OverallConclusion != "" {
		t.Errorf("snapshot shares payload with the store")
	}
}

func TestConversationStore_Loading(t *testing.T) {
	s := NewConversationStore()

	if s.IsLoading() {
		t.Fatal("new store should not be loading")
	}

	s.BeginRequest()
	s.BeginRequest()
	if got := s.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}

	s.CompleteRequest(NewAIMessage(ErrorPayload()))
	if !s.IsLoading() {
		t.Error("store should still be loading with one request outstanding")
	}

	s.CompleteRequest(NewAIMessage(ErrorPayload()))
	if s.IsLoading() {
		t.Error("store should not be loading after every request completed")
	}

	// Extra completions never drive the counter negative
	s.CompleteRequest(NewAIMessage(ErrorPayload()))
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestConversationStore_SetLoading(t *testing.T) {
	s := NewConversationStore()

	s.SetLoading(true)
	s.SetLoading(true)
	if got := s.Pending(); got != 1 {
		t.Errorf("SetLoading(true) twice: Pending() = %d, want 1", got)
	}

	s.BeginRequest()
	s.SetLoading(false)
	if s.IsLoading() {
		t.Error("SetLoading(false) should clear all outstanding requests")
	}
}

func TestConversationStore_LastAI(t *testing.T) {
	s := NewConversationStore()

	if _, ok := s.LastAI(); ok {
		t.Fatal("empty store has no AI message")
	}
	if _, ok := s.Last(); ok {
		t.Fatal("empty store has no last message")
	}

	s.Append(NewAIMessage(AIPayload{OverallConclusion: "one"}))
	s.Append(NewAIMessage(AIPayload{OverallConclusion: "two"}))
	s.Append(NewUserMessage("question"))

	last, ok := s.LastAI()
	if !ok || last.AI.OverallConclusion != "two" {
		t.Errorf("LastAI() = %+v, %v", last, ok)
	}
	if msg, _ := s.Last(); msg.Role != RoleUser {
		t.Errorf("Last() role = %s, want user", msg.Role)
	}
}

func TestConversationStore_ConcurrentAppend(t *testing.T) {
	s := NewConversationStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.BeginRequest()
			s.CompleteRequest(NewAIMessage(ErrorPayload()))
		}()
	}
	wg.Wait()

	if got := s.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}
	if s.IsLoading() {
		t.Error("store still loading after all requests completed")
	}
}

func TestNewAIMessage_NilIngredients(t *testing.T) {
	msg := NewAIMessage(AIPayload{OverallConclusion: "x"})

	if msg.AI.Ingredients == nil {
		t.Error("AI message ingredients should be an empty slice, not nil")
	}
	if msg.ID == "" {
		t.Error("message ID should be set")
	}
}
