// Package capture turns non-typed input (label photos, speech) into plain text
// for the submit pipeline. Recognition itself is delegated to providers behind
// the narrow Extractor and Transcriber interfaces.
package capture

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ingredi/model"
)

const (
	// MinExtractedChars is the shortest OCR result forwarded verbatim
	MinExtractedChars = 3

	FallbackUnreadable = "Unable to clearly detect ingredients from image"
	FallbackFailed     = "Image analysis failed. Please try again."
)

// ErrNotImage is returned for files that are not a supported image type
var ErrNotImage = errors.New("not a supported image file")

// ImageTypes lists the file extensions the camera capture accepts
var ImageTypes = []string{".png", ".jpg", ".jpeg", ".webp", ".heic", ".gif", ".bmp"}

// Extractor produces text from an image (OCR provider)
type Extractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// Transcriber produces text from speech. It may block until cancelled.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// IsImage reports whether path has a supported image extension
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, t := range ImageTypes {
		if ext == t {
			return true
		}
	}
	return false
}

// Camera converts a label photo into submit-ready text
type Camera struct {
	extractor Extractor
	minChars  int
	log       *zap.Logger
}

func NewCamera(extractor Extractor, minChars int, log *zap.Logger) *Camera {
	if minChars <= 0 {
		minChars = MinExtractedChars
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Camera{extractor: extractor, minChars: minChars, log: log}
}

// Capture always yields text for the pipeline: the extracted text when it is
// long enough, otherwise one of the fixed fallback strings.
func (c *Camera) Capture(ctx context.Context, imagePath string) (string, error) {
	if !IsImage(imagePath) {
		return "", fmt.Errorf("%s: %w", filepath.Base(imagePath), ErrNotImage)
	}
	if c.extractor == nil {
		c.log.Warn("camera capture without OCR provider")
		return FallbackFailed, nil
	}

	text, err := c.extractor.ExtractText(ctx, imagePath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		c.log.Warn("ocr failed", zap.String("image", filepath.Base(imagePath)), zap.Error(err))
		return FallbackFailed, nil
	}

	return c.accept(text), nil
}

func (c *Camera) accept(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < c.minChars {
		c.log.Debug("ocr text below floor", zap.Int("chars", utf8.RuneCountInString(text)))
		return FallbackUnreadable
	}
	return text
}

// CaptureCmd runs Capture in the background and reports the result to the
// overlay identified by token.
func (c *Camera) CaptureCmd(ctx context.Context, token int, imagePath string) tea.Cmd {
	return func() tea.Msg {
		text, err := c.Capture(ctx, imagePath)
		if err != nil {
			return model.CaptureFailedMsg{Source: model.CaptureCamera, Token: token, Err: err}
		}
		return model.CaptureCompleteMsg{Source: model.CaptureCamera, Token: token, Text: text}
	}
}

// Voice converts speech into submit-ready text
type Voice struct {
	transcriber Transcriber
	log         *zap.Logger
}

func NewVoice(transcriber Transcriber, log *zap.Logger) *Voice {
	if log == nil {
		log = zap.NewNop()
	}
	return &Voice{transcriber: transcriber, log: log}
}

// Available reports whether a transcriber is configured
func (v *Voice) Available() bool {
	return v != nil && v.transcriber != nil
}

// Capture returns the transcript. Cancelling ctx (closing the overlay) yields
// the context error and nothing is submitted.
func (v *Voice) Capture(ctx context.Context) (string, error) {
	if !v.Available() {
		return "", errors.New("no voice transcriber configured")
	}
	text, err := v.transcriber.Transcribe(ctx)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return strings.TrimSpace(text), nil
}

// CaptureCmd runs Capture in the background for the overlay identified by token
func (v *Voice) CaptureCmd(ctx context.Context, token int) tea.Cmd {
	return func() tea.Msg {
		text, err := v.Capture(ctx)
		if err != nil {
			v.log.Debug("voice capture ended without text", zap.Error(err))
			return model.CaptureFailedMsg{Source: model.CaptureVoice, Token: token, Err: err}
		}
		return model.CaptureCompleteMsg{Source: model.CaptureVoice, Token: token, Text: text}
	}
}

// DictationCmd delivers a typed transcript through the same capture path
func DictationCmd(token int, text string) tea.Cmd {
	return func() tea.Msg {
		return model.CaptureCompleteMsg{Source: model.CaptureVoice, Token: token, Text: strings.TrimSpace(text)}
	}
}
