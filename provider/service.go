package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ingredi/model"
)

// ServiceAnalyzer calls the remote reasoning service.
type ServiceAnalyzer struct {
	client   *http.Client
	baseURL  string
	endpoint string
}

// NewServiceAnalyzer creates a reasoning service client.
//
// Parameters:
//   - baseURL: service base URL (required, e.g. "http://localhost:8000")
//   - path: reasoning endpoint path (default: "/api/reasoning")
//   - client: HTTP client (default: http.DefaultClient; the gateway applies timeouts)
func NewServiceAnalyzer(baseURL, path string, client *http.Client) (*ServiceAnalyzer, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultReasoningPath
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ServiceAnalyzer{
		client:   client,
		baseURL:  base,
		endpoint: joinURL(base, path),
	}, nil
}

func (s *ServiceAnalyzer) Name() string {
	return "service"
}

// Endpoint returns the full reasoning URL
func (s *ServiceAnalyzer) Endpoint() string {
	return s.endpoint
}

// Analyze posts {ingredients, product_context} and returns the raw JSON body.
// Non-2xx responses are errors.
func (s *ServiceAnalyzer) Analyze(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal reasoning request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reasoning post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read reasoning response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("reasoning service returned %d", resp.StatusCode)
	}

	return data, nil
}

// Ping checks that the service host answers HTTP at all
func (s *ServiceAnalyzer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("reasoning service unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

func parseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("service base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid service URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid service URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid service URL %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
