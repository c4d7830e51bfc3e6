package testutil

import (
	"context"
	"sync"

	"ingredi/model"
)

// MockAnalyzer implements model.Analyzer for testing
type MockAnalyzer struct {
	// Configurable responses
	AnalyzeFunc func(ctx context.Context, req model.AnalyzeRequest) ([]byte, error)
	PingFunc    func(ctx context.Context) error

	mu       sync.Mutex
	requests []model.AnalyzeRequest
}

// NewMockAnalyzer creates a mock analyzer that answers every request with body
func NewMockAnalyzer(body string) *MockAnalyzer {
	mock := &MockAnalyzer{}
	mock.AnalyzeFunc = func(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
		return []byte(body), nil
	}
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

// NewFailingAnalyzer creates a mock analyzer whose every call fails with err
func NewFailingAnalyzer(err error) *MockAnalyzer {
	mock := &MockAnalyzer{}
	mock.AnalyzeFunc = func(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
		return nil, err
	}
	mock.PingFunc = func(ctx context.Context) error { return err }
	return mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.AnalyzeFunc(ctx, req)
}

func (m *MockAnalyzer) Name() string {
	return "mock"
}

func (m *MockAnalyzer) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Calls returns the number of Analyze invocations
func (m *MockAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request received
func (m *MockAnalyzer) Requests() []model.AnalyzeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AnalyzeRequest(nil), m.requests...)
}

// MockExtractor implements capture.Extractor for testing
type MockExtractor struct {
	Text string
	Err  error

	mu    sync.Mutex
	paths []string
}

func (m *MockExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
	return m.Text, m.Err
}

// Paths returns every image path passed to ExtractText
func (m *MockExtractor) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// MockTranscriber implements capture.Transcriber for testing.
// With Block set it never resolves until the context is cancelled.
type MockTranscriber struct {
	Text  string
	Err   error
	Block bool
}

func (m *MockTranscriber) Transcribe(ctx context.Context) (string, error) {
	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.Text, m.Err
}
