package provider

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"ingredi/model"
)

// ReasoningResponse documents the response contract of the reasoning service.
// It is only used to generate the JSON schema handed to model providers; parsing
// always goes through model.Normalize.
type ReasoningResponse struct {
	Greeting          string                `json:"greeting,omitempty" jsonschema:"description=One friendly sentence acknowledging the request"`
	Ingredients       []IngredientReasoning `json:"ingredients" jsonschema:"description=One entry per notable ingredient"`
	OverallNutrition  string                `json:"overall_nutrition,omitempty" jsonschema:"description=Short nutrition summary if it can be inferred"`
	OverallConclusion string                `json:"overall_conclusion" jsonschema:"description=Plain-language conclusion for the whole product"`
}

type IngredientReasoning struct {
	Name        string `json:"name" jsonschema:"minLength=1"`
	Severity    string `json:"severity" jsonschema:"enum=low,enum=medium,enum=high"`
	WhatItIs    string `json:"what_it_is" jsonschema:"description=What the ingredient is"`
	WhyItIsUsed string `json:"why_it_is_used" jsonschema:"description=Why it is used and who might care"`
	Tradeoffs   string `json:"tradeoffs" jsonschema:"description=Trade-offs to be aware of"`
	Uncertainty string `json:"uncertainty" jsonschema:"description=What is known and not known"`
}

var (
	schemaOnce sync.Once
	schemaJSON json.RawMessage
)

// ResponseSchema returns the JSON schema of ReasoningResponse
func ResponseSchema() json.RawMessage {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		s := r.Reflect(&ReasoningResponse{})
		data, err := json.Marshal(s)
		if err != nil {
			// Reflection of a static struct cannot fail at runtime
			data = []byte(`{"type":"object"}`)
		}
		schemaJSON = data
	})
	return schemaJSON
}

// systemPrompt instructs a model provider to answer with the reasoning contract only
func systemPrompt() string {
	return fmt.Sprintf(
		"You explain food and cosmetic ingredient lists to ordinary shoppers.\n\n"+
			"Answer ONLY with a JSON object that matches this JSON schema:\n%s\n\n"+
			"Rules:\n"+
			"- severity is low, medium or high\n"+
			"- keep each field to one or two sentences\n"+
			"- say so in uncertainty when evidence is weak\n"+
			"- no markdown, no code fences, no text outside the JSON",
		string(ResponseSchema()),
	)
}

// userPrompt renders the analyze request for a model provider
func userPrompt(req model.AnalyzeRequest) string {
	var b strings.Builder
	b.WriteString("Ingredients:\n")
	b.WriteString(req.Ingredients)
	if req.ProductContext != "" {
		b.WriteString("\n\nProduct context:\n")
		b.WriteString(req.ProductContext)
	}
	return b.String()
}

// extractJSON pulls the JSON object out of a model reply that may be wrapped
// in code fences or surrounded by prose.
func extractJSON(reply string) ([]byte, error) {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	candidate := []byte(s[start : end+1])
	if !model.IsValidJSON(candidate) {
		return nil, fmt.Errorf("model reply is not valid JSON")
	}
	return candidate, nil
}
