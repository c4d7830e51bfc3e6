package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ingredi/capture"
	appmodel "ingredi/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Spinners first so TickMsg reaches whichever one is running
	if _, ok := msg.(tickMsg); ok {
		if a.dataModel.IsLoading() {
			a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
			cmds = append(cmds, cmd)
			a.updateViewportContent(true)
		}
		if a.cameraPicker.Processing {
			a.cameraPicker.Spinner, cmd = a.cameraPicker.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if a.voiceState.Listening {
			a.voiceState.Spinner, cmd = a.voiceState.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	// The file picker needs every non-key message (directory reads)
	if a.cameraPicker.Active && !a.cameraPicker.Processing {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			a.cameraPicker.Picker, cmd = a.cameraPicker.Picker.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		resized := a.width != msg.Width
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		a.viewport.Width = a.width
		a.viewport.Height = a.height - 6
		a.textarea.SetWidth(a.width)
		a.cameraPicker.Picker.Height = max(a.height-16, 5)

		a.ready = true
		a.updateViewportContent(true)

		if resized {
			cmds = append(cmds, a.renderAllCards())
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var handled bool
	a, cmd, handled = a.handleCoreMessage(msg)
	if handled {
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)
	}

	a, cmd = a.handleUIMessage(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// PRIORITY 0: Always-global shortcuts
	if key == "ctrl+c" || key == a.keys.GetActionKey("quit") {
		a.log.Debug("quit requested")
		a.cameraPicker.Reset()
		a.voiceState.Stop()
		return a, tea.Quit
	}

	if a.showAcknowledgeModal {
		if key == "enter" || key == "esc" {
			a.showAcknowledgeModal = false
		}
		return a, nil
	}

	if key == a.keys.GetActionKey("help") {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		if key == "esc" {
			a.showHelp = false
		}
		return a, nil
	}

	if a.showSearch {
		return a.handleSearchKey(msg)
	}

	switch a.dataModel.View() {
	case appmodel.ViewCaptureCamera:
		return a.handleCameraKey(msg)
	case appmodel.ViewCaptureVoice:
		return a.handleVoiceKey(msg)
	default:
		return a.handleComposerKey(msg)
	}
}

// handleComposerKey covers landing and chat, which share the input box
func (a AppView) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	inChat := a.dataModel.View() == appmodel.ViewChat

	switch msg.String() {
	case "enter":
		submit := a.dataModel.Submit(a.textarea.Value())
		if submit == nil {
			return a, nil
		}
		a.textarea.Reset()
		a.updateViewportContent(true)
		return a, tea.Batch(submit, a.loadingSpinner.Tick)

	case a.keys.GetActionKey("open_camera"):
		if !a.dataModel.OpenCamera() {
			return a, nil
		}
		a.textarea.Blur()
		return a, a.cameraPicker.Activate()

	case a.keys.GetActionKey("open_voice"):
		if !a.dataModel.OpenVoice() {
			return a, nil
		}
		a.textarea.Blur()
		return a, a.voiceState.Start(a.voice, a.dataModel.CaptureToken())

	case a.keys.GetActionKey("yank_last_result"):
		last, ok := a.dataModel.Store.LastAI()
		if !ok {
			return a, nil
		}
		return a.yank(payloadText(last.AI), "Copied analysis")

	case a.keys.GetActionKey("yank_conversation"):
		if a.dataModel.Store.IsEmpty() {
			return a, nil
		}
		return a.yank(conversationText(a.dataModel.Messages()), "Copied conversation")

	case a.keys.GetActionKey("search_findings"):
		if !inChat {
			return a, nil
		}
		a.showSearch = true
		a.searchInput.SetValue("")
		a.searchResults = appmodel.SearchFindings(a.dataModel.Messages(), "")
		a.selectedSearchIdx = 0
		a.searchScrollIdx = 0
		a.searchInput.Focus()
		return a, nil
	}

	if inChat {
		switch msg.String() {
		case a.keys.GetActionKey("scroll_down"), "alt+down":
			a.viewport.ScrollDown(1)
			return a, nil
		case a.keys.GetActionKey("scroll_up"), "alt+up":
			a.viewport.ScrollUp(1)
			return a, nil
		case a.keys.GetActionKey("page_down"):
			a.viewport.PageDown()
			return a, nil
		case a.keys.GetActionKey("page_up"):
			a.viewport.PageUp()
			return a, nil
		case a.keys.GetActionKey("scroll_to_top"):
			a.viewport.GotoTop()
			return a, nil
		case a.keys.GetActionKey("scroll_to_bottom"):
			a.viewport.GotoBottom()
			return a, nil
		}
	}

	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleCameraKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "esc" || msg.String() == a.keys.GetActionKey("close_overlay") {
		a.cameraPicker.Reset()
		a.dataModel.CloseOverlay()
		a.textarea.Focus()
		a.updateViewportContent(true)
		return a, nil
	}

	if a.cameraPicker.Processing {
		return a, nil
	}

	a.cameraPicker.Picker, cmd = a.cameraPicker.Picker.Update(msg)

	if didSelect, path := a.cameraPicker.Picker.DidSelectFile(msg); didSelect {
		if a.camera == nil {
			a.showAcknowledge("⚠️  Camera Unavailable", "No OCR service is configured.", ModalTypeError)
			return a, cmd
		}
		a.log.Debug("image selected", zap.String("path", path))
		ctx := a.cameraPicker.StartProcessing(path)
		return a, tea.Batch(cmd, a.camera.CaptureCmd(ctx, a.dataModel.CaptureToken(), path), a.cameraPicker.Spinner.Tick)
	}

	if didSelect, path := a.cameraPicker.Picker.DidSelectDisabledFile(msg); didSelect {
		a.showAcknowledge("⚠️  Not an Image", fmt.Sprintf("%s is not a supported image.\nSupported: %s",
			path, strings.Join(capture.ImageTypes, " ")), ModalTypeWarning)
		return a, cmd
	}

	return a, cmd
}

func (a AppView) handleVoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc", a.keys.GetActionKey("close_overlay"):
		a.voiceState.Stop()
		a.dataModel.CloseOverlay()
		a.textarea.Focus()
		a.updateViewportContent(true)
		return a, nil

	case "enter":
		if a.voiceState.Listening {
			return a, nil
		}
		return a, capture.DictationCmd(a.dataModel.CaptureToken(), a.voiceState.Input.Value())
	}

	if a.voiceState.Listening {
		return a, nil
	}
	a.voiceState.Input, cmd = a.voiceState.Input.Update(msg)
	return a, cmd
}

// handleCoreMessage feeds controller messages into the model and refreshes the view
func (a AppView) handleCoreMessage(msg tea.Msg) (AppView, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case appmodel.AnalysisCompleteMsg:
		a.dataModel.Apply(msg)
		a.updateViewportContent(true)
		if last, ok := a.dataModel.Store.LastAI(); ok {
			if _, done := a.rendered[last.ID]; !done {
				return a, a.renderCardAsync(last, a.width), true
			}
		}
		return a, nil, true

	case appmodel.CaptureCompleteMsg:
		stale := msg.Token != a.dataModel.CaptureToken()
		next := a.dataModel.Apply(msg)
		if stale {
			return a, nil, true
		}
		a.cameraPicker.Reset()
		a.voiceState.Stop()
		a.textarea.Focus()
		a.updateViewportContent(true)
		if next == nil {
			return a, nil, true
		}
		return a, tea.Batch(next, a.loadingSpinner.Tick), true

	case appmodel.CaptureFailedMsg:
		a.dataModel.Apply(msg)
		if msg.Token != a.dataModel.CaptureToken() || !a.dataModel.View().IsCapture() || errors.Is(msg.Err, context.Canceled) {
			return a, nil, true
		}
		switch msg.Source {
		case appmodel.CaptureCamera:
			a.cameraPicker.Processing = false
			a.showAcknowledge("⚠️  Camera", msg.Err.Error(), ModalTypeWarning)
		case appmodel.CaptureVoice:
			a.voiceState.Listening = false
			a.voiceState.Input.Focus()
			a.showAcknowledge("⚠️  Voice", "Speech recognition failed: "+msg.Err.Error()+"\nYou can type the transcript instead.", ModalTypeWarning)
		}
		return a, nil, true

	case appmodel.TransitionDoneMsg:
		a.dataModel.Apply(msg)
		return a, nil, true
	}
	return a, nil, false
}

func (a AppView) yank(text, status string) (tea.Model, tea.Cmd) {
	if err := clipboard.WriteAll(text); err != nil {
		a.log.Warn("clipboard write failed", zap.Error(err))
		a.statusFlash = "Clipboard unavailable"
	} else {
		a.statusFlash = status
	}
	a.statusSeq++
	seq := a.statusSeq
	return a, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
