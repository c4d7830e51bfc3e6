package model_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredi/model"
	"ingredi/provider/testutil"
)

func TestGateway_AnalyzeNormalizes(t *testing.T) {
	mock := testutil.NewMockAnalyzer(testutil.ReasoningResponseV2)
	g := model.NewGateway(mock, model.WithProductContext("granola bar"))

	p := g.Analyze(context.Background(), testutil.SampleIngredients)

	require.Len(t, p.Ingredients, 2)
	assert.Equal(t, "Sugar", p.Ingredients[0].Name)
	assert.Equal(t, model.SeverityHigh, p.Ingredients[0].Severity)
	assert.Equal(t, model.SeverityMedium, p.Ingredients[1].Severity)
	assert.Equal(t, "sugar g: 12"+model.NutritionSeparator+"sodium mg: 5", p.OverallNutrition)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, testutil.SampleIngredients, reqs[0].Ingredients)
	assert.Equal(t, "granola bar", reqs[0].ProductContext)
}

func TestGateway_LegacyFieldNames(t *testing.T) {
	g := model.NewGateway(testutil.NewMockAnalyzer(testutil.ReasoningResponseV1))

	p := g.Analyze(context.Background(), "maltodextrin")

	require.Len(t, p.Ingredients, 1)
	f := p.Ingredients[0]
	assert.Equal(t, "A starch-derived thickener.", f.WhatItIs)
	assert.Equal(t, "People watching blood sugar.", f.WhyItIsUsed)
	assert.Equal(t, "Generally recognised as safe.", f.Uncertainty)
	assert.Equal(t, model.SeverityLow, f.Severity)
	assert.Equal(t, "Mostly carbohydrate.", p.OverallNutrition)
}

func TestGateway_FailuresBecomeErrorPayload(t *testing.T) {
	tests := []struct {
		name     string
		analyzer model.Analyzer
	}{
		{"transport error", testutil.NewFailingAnalyzer(errors.New("connection refused"))},
		{"malformed body", testutil.NewMockAnalyzer("<html>502 Bad Gateway</html>")},
		{"empty object", testutil.NewMockAnalyzer("{}")},
		{"offline", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := model.NewGateway(tt.analyzer)
			p := g.Analyze(context.Background(), "sugar")
			assert.True(t, p.IsError(), "expected error payload, got %+v", p)
		})
	}
}

func TestGateway_OneCallPerAnalyze(t *testing.T) {
	mock := testutil.NewFailingAnalyzer(errors.New("boom"))
	g := model.NewGateway(mock)

	g.Analyze(context.Background(), "sugar")

	assert.Equal(t, 1, mock.Calls(), "failures must not be retried")
}

func TestGateway_Timeout(t *testing.T) {
	mock := testutil.NewMockAnalyzer("{}")
	mock.AnalyzeFunc = func(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	g := model.NewGateway(mock, model.WithTimeout(20*time.Millisecond))

	start := time.Now()
	p := g.Analyze(context.Background(), "sugar")

	assert.True(t, p.IsError())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGateway_BackendName(t *testing.T) {
	assert.Equal(t, "offline", model.NewGateway(nil).BackendName())
	assert.Equal(t, "mock", model.NewGateway(testutil.NewMockAnalyzer("{}")).BackendName())
	assert.Nil(t, model.NewGateway(nil).Analyzer())
}
