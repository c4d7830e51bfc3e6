package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"ingredi/model"
	"ingredi/provider/testutil"
)

func TestResponseSchema(t *testing.T) {
	schema := ResponseSchema()
	require.True(t, gjson.ValidBytes(schema))

	root := gjson.ParseBytes(schema)
	assert.Equal(t, "object", root.Get("type").String())
	assert.True(t, root.Get("properties.ingredients").Exists())
	assert.True(t, root.Get("properties.overall_conclusion").Exists())

	item := root.Get("properties.ingredients.items.properties")
	for _, field := range []string{"name", "severity", "what_it_is", "why_it_is_used", "tradeoffs", "uncertainty"} {
		assert.True(t, item.Get(field).Exists(), "missing ingredient field %s", field)
	}
}

func TestUserPrompt(t *testing.T) {
	p := userPrompt(model.AnalyzeRequest{Ingredients: "sugar, salt"})
	assert.Contains(t, p, "sugar, salt")
	assert.NotContains(t, p, "Product context")

	p = userPrompt(model.AnalyzeRequest{Ingredients: "sugar", ProductContext: "energy drink"})
	assert.Contains(t, p, "Product context:\nenergy drink")
}

func TestSystemPromptEmbedsSchema(t *testing.T) {
	assert.Contains(t, systemPrompt(), string(ResponseSchema()))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{"bare object", `{"ingredients":[]}`, `{"ingredients":[]}`, false},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, false},
		{"surrounded by prose", "Sure! Here you go: {\"a\":1} Hope that helps.", `{"a":1}`, false},
		{"no object", "I cannot help with that.", "", true},
		{"broken object", `{"a": }`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(string(got)))
		})
	}
}

func TestPingBackend(t *testing.T) {
	msg := PingBackend(nil)().(PingBackendMsg)
	assert.False(t, msg.Valid)
	assert.Equal(t, "offline", msg.Backend)

	msg = PingBackend(testutil.NewMockAnalyzer("{}"))().(PingBackendMsg)
	assert.True(t, msg.Valid)
	assert.Equal(t, "mock", msg.Backend)

	msg = PingBackend(testutil.NewFailingAnalyzer(errors.New("refused")))().(PingBackendMsg)
	assert.False(t, msg.Valid)
	assert.EqualError(t, msg.Err, "refused")
}

func TestPingBackend_UsesTimeout(t *testing.T) {
	mock := testutil.NewMockAnalyzer("{}")
	mock.PingFunc = func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		if !ok {
			return errors.New("no deadline")
		}
		return nil
	}

	msg := PingBackend(mock)().(PingBackendMsg)
	assert.True(t, msg.Valid, "ping error: %v", msg.Err)
}
