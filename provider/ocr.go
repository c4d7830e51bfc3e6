package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// OCRClient extracts label text from an image through the service's OCR endpoint.
type OCRClient struct {
	client   *http.Client
	endpoint string
}

// NewOCRClient creates an OCR client for baseURL (path defaults to "/api/ocr")
func NewOCRClient(baseURL, path string, client *http.Client) (*OCRClient, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultOCRPath
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OCRClient{client: client, endpoint: joinURL(base, path)}, nil
}

type ocrResponse struct {
	ExtractedText string `json:"extracted_text"`
}

// ExtractText uploads the image at path as multipart field "image" and returns
// the extracted_text of the response (possibly empty).
func (c *OCRClient) ExtractText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("ocr service returned %d", resp.StatusCode)
	}

	var out ocrResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse OCR response: %w", err)
	}
	return out.ExtractedText, nil
}
