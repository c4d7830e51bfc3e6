package provider

import (
	"fmt"
	"strings"

	"ingredi/model"
)

// NewAnalyzer creates a backend based on configuration.
//
// Supported backend types:
//   - BackendService: the HTTP reasoning service (default)
//   - BackendOllama: local Ollama model
//   - BackendOpenAI: OpenAI-compatible API
//   - BackendAnthropic: Anthropic API
//
// Returns an error if the type is unknown or the backend constructor fails
// (e.g. missing base URL or API key).
func NewAnalyzer(cfg Config) (model.Analyzer, error) {
	switch cfg.Type {
	case BackendService, "":
		return NewServiceAnalyzer(cfg.BaseURL, cfg.ReasoningPath, cfg.HTTPClient)
	case BackendOllama:
		return NewOllamaAnalyzer(cfg.BaseURL, cfg.Model)
	case BackendOpenAI:
		return NewOpenAIAnalyzer(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case BackendAnthropic:
		return NewAnthropicAnalyzer(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown backend type: %s", cfg.Type)
	}
}

// ParseBackendType converts a user-facing backend name to a BackendType.
// Unknown names are passed through as-is (the factory will error).
func ParseBackendType(name string) BackendType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "service", "reasoning":
		return BackendService
	case "ollama":
		return BackendOllama
	case "openai", "openrouter":
		return BackendOpenAI
	case "anthropic", "claude":
		return BackendAnthropic
	default:
		return BackendType(name)
	}
}
