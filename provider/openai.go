package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"ingredi/model"
)

// OpenAIAnalyzer asks an OpenAI-compatible chat model for the reasoning contract.
type OpenAIAnalyzer struct {
	client openai.Client
	model  string
}

// NewOpenAIAnalyzer creates an OpenAI analyzer.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: model to use (default: "gpt-4o-mini")
func NewOpenAIAnalyzer(baseURL, apiKey, modelName string) (*OpenAIAnalyzer, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIAnalyzer{client: client, model: modelName}, nil
}

func (p *OpenAIAnalyzer) Name() string {
	return "openai/" + p.model
}

func (p *OpenAIAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt()),
			openai.UserMessage(userPrompt(req)),
		},
		Model: openai.ChatModel(p.model),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI returned no choices")
	}
	return extractJSON(resp.Choices[0].Message.Content)
}

// Ping attempts to list models.
func (p *OpenAIAnalyzer) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}
