package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// CommandTranscriber runs an external speech-to-text command and reads the
// transcript from its stdout, e.g. `whisper-stream --once --model base.en`.
type CommandTranscriber struct {
	argv []string
}

// NewCommandTranscriber parses command with shell quoting rules.
// An empty command returns (nil, nil): voice falls back to dictation.
func NewCommandTranscriber(command string) (*CommandTranscriber, error) {
	if strings.TrimSpace(command) == "" {
		return nil, nil
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid voice command: %w", err)
	}
	if len(argv) == 0 {
		return nil, nil
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("voice command %q not found: %w", argv[0], err)
	}
	return &CommandTranscriber{argv: argv}, nil
}

// Transcribe runs the command; cancelling ctx kills it
func (t *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, t.argv[0], t.argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return "", fmt.Errorf("voice command failed: %s", strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("voice command failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
