package provider

import (
	"context"
	"fmt"

	"ingredi/model"
	"ingredi/ollama"
)

// OllamaAnalyzer asks a local Ollama model for the reasoning contract.
// The contract schema is passed as Ollama's structured output format.
type OllamaAnalyzer struct {
	client *ollama.Client
}

// NewOllamaAnalyzer creates an analyzer for the Ollama server at baseURL
// (default "http://localhost:11434") using model (default "llama3.1:latest").
func NewOllamaAnalyzer(baseURL, modelName string) (*OllamaAnalyzer, error) {
	client, err := ollama.NewClient(baseURL, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaAnalyzer{client: client}, nil
}

func (p *OllamaAnalyzer) Name() string {
	return "ollama/" + p.client.GetModel()
}

func (p *OllamaAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
	reply, err := p.client.Complete(ctx, systemPrompt(), userPrompt(req), ResponseSchema())
	if err != nil {
		return nil, err
	}
	return extractJSON(reply)
}

func (p *OllamaAnalyzer) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
