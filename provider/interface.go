// Package provider implements the reasoning backends behind model.Analyzer.
//
// ingredi talks to a remote reasoning service over HTTP by default. For local
// or offline use the same JSON response contract can be produced by a model
// provider (Ollama, OpenAI, Anthropic) that is prompted with the contract's
// JSON schema. Every backend returns the raw JSON body; normalization happens
// in the model package so all backends share one tolerant parser.
//
// # Architecture
//
//   - model.Analyzer defines the contract (interface)
//   - provider.ServiceAnalyzer calls POST {base}/api/reasoning
//   - provider.OllamaAnalyzer, OpenAIAnalyzer, AnthropicAnalyzer prompt a model
//   - provider.OCRClient calls POST {base}/api/ocr for the camera capture
//   - provider.NewAnalyzer() factory creates backends from config
//
// # Usage
//
//	a, err := provider.NewAnalyzer(provider.Config{
//	    Type:    provider.BackendService,
//	    BaseURL: "http://localhost:8000",
//	})
//	if err != nil {
//	    // handle error
//	}
//	raw, err := a.Analyze(ctx, model.AnalyzeRequest{Ingredients: "sugar, salt"})
package provider

import (
	"net/http"
)

// BackendType identifies the analyzer implementation.
type BackendType string

const (
	BackendService   BackendType = "service"
	BackendOllama    BackendType = "ollama"
	BackendOpenAI    BackendType = "openai"
	BackendAnthropic BackendType = "anthropic"
)

const (
	DefaultReasoningPath = "/api/reasoning"
	DefaultOCRPath       = "/api/ocr"

	// maxResponseBytes bounds how much of a backend body is read
	maxResponseBytes = 4 << 20
)

// Config holds backend-specific configuration.
type Config struct {
	Type          BackendType
	BaseURL       string
	ReasoningPath string // service only
	Model         string // model providers only
	APIKey        string // OpenAI/Anthropic (unused for service and Ollama)
	HTTPClient    *http.Client
}
