package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredi/model"
)

func TestNewAnalyzer(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "service",
			cfg:      Config{Type: BackendService, BaseURL: "http://localhost:8000"},
			wantName: "service",
		},
		{
			name:     "empty type defaults to service",
			cfg:      Config{BaseURL: "http://localhost:8000"},
			wantName: "service",
		},
		{
			name:    "service without URL",
			cfg:     Config{Type: BackendService},
			wantErr: true,
		},
		{
			name:     "ollama defaults",
			cfg:      Config{Type: BackendOllama},
			wantName: "ollama/llama3.1:latest",
		},
		{
			name:     "openai",
			cfg:      Config{Type: BackendOpenAI, APIKey: "sk-test", Model: "gpt-4o"},
			wantName: "openai/gpt-4o",
		},
		{
			name:    "openai without key",
			cfg:     Config{Type: BackendOpenAI},
			wantErr: true,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Type: BackendAnthropic},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     Config{Type: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnalyzer(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, a.Name())
		})
	}
}

func TestParseBackendType(t *testing.T) {
	tests := map[string]BackendType{
		"":           BackendService,
		"Service":    BackendService,
		" ollama ":   BackendOllama,
		"openrouter": BackendOpenAI,
		"OpenAI":     BackendOpenAI,
		"claude":     BackendAnthropic,
		"anthropic":  BackendAnthropic,
		"mystery":    BackendType("mystery"),
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseBackendType(in), in)
	}
}

func TestOllamaAnalyzer_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		assert.NotNil(t, req["format"], "schema should be passed as format")

		reply, _ := json.Marshal(map[string]any{
			"model":      "test-model",
			"created_at": "2025-01-01T00:00:00Z",
			"message": map[string]any{
				"role":    "assistant",
				"content": "```json\n{\"ingredients\":[{\"name\":\"Salt\"}],\"overall_conclusion\":\"ok\"}\n```",
			},
			"done": true,
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(reply)
	}))
	defer srv.Close()

	a, err := NewOllamaAnalyzer(srv.URL, "test-model")
	require.NoError(t, err)

	raw, err := a.Analyze(context.Background(), model.AnalyzeRequest{Ingredients: "salt"})
	require.NoError(t, err)

	p := model.Normalize(raw)
	require.Len(t, p.Ingredients, 1)
	assert.Equal(t, "Salt", p.Ingredients[0].Name)
}

func TestOpenAIAnalyzer_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "sugar, salt")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"ingredients\":[{\"name\":\"Sugar\",\"severity\":\"high\"}]}"}
			}]
		}`)
	}))
	defer srv.Close()

	a, err := NewOpenAIAnalyzer(srv.URL+"/v1", "sk-test", "")
	require.NoError(t, err)

	raw, err := a.Analyze(context.Background(), model.AnalyzeRequest{Ingredients: "sugar, salt"})
	require.NoError(t, err)

	p := model.Normalize(raw)
	require.Len(t, p.Ingredients, 1)
	assert.Equal(t, model.SeverityHigh, p.Ingredients[0].Severity)
}
