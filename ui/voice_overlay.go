package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ingredi/capture"
)

// VoiceState backs the voice overlay. With a transcriber configured it
// listens until the transcript arrives; otherwise the user types it.
type VoiceState struct {
	Listening bool
	Input     textinput.Model
	Spinner   spinner.Model

	cancel context.CancelFunc
}

func NewVoiceState() VoiceState {
	input := textinput.New()
	input.Prompt = "🎤 "
	input.Placeholder = "Say or type the ingredients..."
	input.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return VoiceState{Input: input, Spinner: sp}
}

// Start begins a capture for the overlay identified by token
func (vs *VoiceState) Start(voice *capture.Voice, token int) tea.Cmd {
	vs.Input.Reset()

	if !voice.Available() {
		vs.Listening = false
		vs.Input.Focus()
		return textinput.Blink
	}

	ctx, cancel := context.WithCancel(context.Background())
	vs.cancel = cancel
	vs.Listening = true
	return tea.Batch(voice.CaptureCmd(ctx, token), vs.Spinner.Tick)
}

// Stop cancels any running transcription
func (vs *VoiceState) Stop() {
	if vs.cancel != nil {
		vs.cancel()
		vs.cancel = nil
	}
	vs.Listening = false
	vs.Input.Blur()
}

func renderVoiceOverlay(state VoiceState, width, height int) string {
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := 60
	if width < modalWidth+10 {
		modalWidth = width - 10
	}

	lineStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Center)

	var lines []string
	var footer string
	if state.Listening {
		lines = append(lines,
			lineStyle.Bold(true).Render(state.Spinner.View()+" Listening..."),
			strings.Repeat(" ", modalWidth),
			lineStyle.Foreground(dimColor).Render("Read the ingredient list aloud."),
		)
		footer = FormatFooter("Esc", "Cancel")
	} else {
		state.Input.Width = modalWidth - 6
		lines = append(lines,
			lineStyle.Foreground(dimColor).Render("No speech recognizer configured. Dictate here instead:"),
			strings.Repeat(" ", modalWidth),
			"  "+state.Input.View(),
		)
		footer = FormatFooter("Enter", "Analyze", "Esc", "Cancel")
	}

	return RenderThreeSectionModal("🎤 Voice Input", lines, footer, ModalTypeInfo, modalWidth, width, height)
}
