package model

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds a single analyze call when none is configured
const DefaultRequestTimeout = 120 * time.Second

// Gateway issues the logical analyze(text) operation against an Analyzer and
// folds every failure into the canonical error payload.
type Gateway struct {
	analyzer       Analyzer
	productContext string
	timeout        time.Duration
	log            *zap.Logger
}

// GatewayOption customizes a Gateway
type GatewayOption func(*Gateway)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithProductContext attaches a product_context to every request
func WithProductContext(ctx string) GatewayOption {
	return func(g *Gateway) { g.productContext = ctx }
}

// WithLogger sets the gateway logger
func WithLogger(log *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

func NewGateway(analyzer Analyzer, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		analyzer: analyzer,
		timeout:  DefaultRequestTimeout,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BackendName returns the name of the configured analyzer
func (g *Gateway) BackendName() string {
	if g.analyzer == nil {
		return "offline"
	}
	return g.analyzer.Name()
}

// Analyzer returns the configured backend, nil when offline
func (g *Gateway) Analyzer() Analyzer {
	return g.analyzer
}

// Analyze makes exactly one backend call for text. It never returns an error:
// transport failures, non-JSON bodies and empty payloads all resolve to ErrorPayload.
func (g *Gateway) Analyze(ctx context.Context, text string) AIPayload {
	if g.analyzer == nil {
		g.log.Warn("analyze without backend")
		return ErrorPayload()
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.analyzer.Analyze(ctx, AnalyzeRequest{
		Ingredients:    text,
		ProductContext: g.productContext,
	})
	elapsed := time.Since(start)

	if err != nil {
		g.log.Warn("analyze failed",
			zap.String("backend", g.analyzer.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return ErrorPayload()
	}
	if !IsValidJSON(raw) {
		g.log.Warn("analyze returned malformed JSON",
			zap.String("backend", g.analyzer.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Int("bytes", len(raw)))
		return ErrorPayload()
	}

	payload := Normalize(raw)
	if payload.IsEmpty() {
		g.log.Warn("analyze returned empty payload",
			zap.String("backend", g.analyzer.Name()),
			zap.Duration("elapsed", elapsed))
		return ErrorPayload()
	}

	g.log.Debug("analyze complete",
		zap.String("backend", g.analyzer.Name()),
		zap.Duration("elapsed", elapsed),
		zap.Int("ingredients", len(payload.Ingredients)))
	return payload
}
