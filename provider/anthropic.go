package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ingredi/model"
)

// AnthropicAnalyzer asks a Claude model for the reasoning contract.
type AnthropicAnalyzer struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicAnalyzer creates an Anthropic analyzer.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: model to use (default: "claude-sonnet-4-5-20250929")
func NewAnthropicAnalyzer(baseURL, apiKey, modelName string) (*AnthropicAnalyzer, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if modelName != "" {
		anthropicModel = anthropic.Model(modelName)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicAnalyzer{client: &client, model: anthropicModel}, nil
}

func (p *AnthropicAnalyzer) Name() string {
	return "anthropic/" + string(p.model)
}

func (p *AnthropicAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Anthropic message error: %w", err)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	return extractJSON(reply.String())
}

// Ping makes a minimal request; Anthropic has no health endpoint.
func (p *AnthropicAnalyzer) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}
