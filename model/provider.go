package model

import (
	"context"
)

// AnalyzeRequest is the logical body of a reasoning request
type AnalyzeRequest struct {
	Ingredients    string `json:"ingredients"`
	ProductContext string `json:"product_context,omitempty"`
}

// Analyzer abstracts reasoning backends (the HTTP reasoning service or a model
// provider prompted to emit the same JSON contract).
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model for the request type.
type Analyzer interface {
	// Analyze performs exactly one backend call and returns the raw JSON body.
	Analyze(ctx context.Context, req AnalyzeRequest) ([]byte, error)

	// Name identifies the backend in logs and the status bar.
	Name() string

	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error
}
