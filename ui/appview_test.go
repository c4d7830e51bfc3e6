package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredi/capture"
	appmodel "ingredi/model"
	"ingredi/provider/testutil"
)

func newTestView(t *testing.T, body string) (AppView, *testutil.MockAnalyzer) {
	t.Helper()
	mock := testutil.NewMockAnalyzer(body)
	m := appmodel.NewModel(appmodel.NewGateway(mock), nil, "test")
	m.TransitionWindow = 0

	v := NewAppView(m, Options{
		Camera:    capture.NewCamera(&testutil.MockExtractor{Text: "water, sugar"}, 0, nil),
		Voice:     capture.NewVoice(nil, nil),
		PickerDir: t.TempDir(),
	})
	model, _ := v.Update(tea.WindowSizeMsg{Width: 100, Height: 120})
	return model.(AppView), mock
}

func typeText(t *testing.T, v AppView, text string) AppView {
	t.Helper()
	model, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return model.(AppView)
}

func press(t *testing.T, v AppView, msg tea.KeyMsg) (AppView, tea.Cmd) {
	t.Helper()
	model, cmd := v.Update(msg)
	return model.(AppView), cmd
}

func alt(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

// settle runs cmd and feeds every controller message it produces back into
// the view until nothing is left.
func settle(t *testing.T, v AppView, cmd tea.Cmd) AppView {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 50; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case appmodel.AnalysisCompleteMsg, appmodel.CaptureCompleteMsg, appmodel.CaptureFailedMsg, cardRenderedMsg:
			model, next := v.Update(msg)
			v = model.(AppView)
			queue = append(queue, next)
		}
	}
	return v
}

func TestAppView_TypedSubmit(t *testing.T) {
	v, mock := newTestView(t, testutil.ReasoningResponseV2)
	assert.Equal(t, appmodel.ViewLanding, v.dataModel.View())
	assert.Contains(t, stripANSI(v.View()), "What's in this, and should I care?")

	v = typeText(t, v, "sugar, salt")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, appmodel.ViewChat, v.dataModel.View())
	assert.True(t, v.dataModel.IsLoading())
	assert.Empty(t, v.textarea.Value(), "composer clears after submit")

	v = settle(t, v, cmd)

	assert.False(t, v.dataModel.IsLoading())
	assert.Len(t, v.dataModel.Messages(), 2)
	assert.Equal(t, 1, mock.Calls())

	content := stripANSI(v.viewport.View())
	assert.Contains(t, content, "Sugar")
	assert.Contains(t, content, "occasional treat")
}

func TestAppView_BlankEnterIgnored(t *testing.T) {
	v, mock := newTestView(t, testutil.ReasoningResponseV2)

	v = typeText(t, v, "   ")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, appmodel.ViewLanding, v.dataModel.View())
	assert.Zero(t, mock.Calls())
}

func TestAppView_CameraOverlay(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('c'))
	require.Equal(t, appmodel.ViewCaptureCamera, v.dataModel.View())
	assert.True(t, v.cameraPicker.Active)
	assert.Contains(t, stripANSI(v.View()), "Scan Ingredient Label")

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, appmodel.ViewLanding, v.dataModel.View())
	assert.False(t, v.cameraPicker.Active)
}

func TestAppView_CameraResultSubmits(t *testing.T) {
	v, mock := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('c'))
	token := v.dataModel.CaptureToken()
	cmd := v.camera.CaptureCmd(t.Context(), token, "label.jpg")

	v = settle(t, v, cmd)

	assert.Equal(t, appmodel.ViewChat, v.dataModel.View())
	msgs := v.dataModel.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "water, sugar", msgs[0].Content)
	assert.Equal(t, 1, mock.Calls())
}

func TestAppView_VoiceDictation(t *testing.T) {
	v, mock := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('v'))
	require.Equal(t, appmodel.ViewCaptureVoice, v.dataModel.View())
	assert.False(t, v.voiceState.Listening, "no transcriber: dictation field")

	model, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("oats, honey")})
	v = model.(AppView)
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	v = settle(t, v, cmd)

	msgs := v.dataModel.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "oats, honey", msgs[0].Content)
	assert.Equal(t, appmodel.ViewChat, v.dataModel.View())
	assert.Equal(t, 1, mock.Calls())
}

func TestAppView_StaleCaptureFailureIgnored(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('v'))
	token := v.dataModel.CaptureToken()
	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})

	model, _ := v.Update(appmodel.CaptureFailedMsg{Source: appmodel.CaptureVoice, Token: token, Err: assert.AnError})
	v = model.(AppView)
	assert.False(t, v.showAcknowledgeModal)
	assert.Equal(t, appmodel.ViewLanding, v.dataModel.View())
}

func TestAppView_CaptureFailureShowsModal(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('c'))
	model, _ := v.Update(appmodel.CaptureFailedMsg{Source: appmodel.CaptureCamera, Token: v.dataModel.CaptureToken(), Err: capture.ErrNotImage})
	v = model.(AppView)

	require.True(t, v.showAcknowledgeModal)
	assert.Contains(t, stripANSI(v.View()), "not a supported image")

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.showAcknowledgeModal)
	assert.Equal(t, appmodel.ViewCaptureCamera, v.dataModel.View(), "overlay stays open")
}

func TestAppView_SearchOnlyInChat(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('f'))
	assert.False(t, v.showSearch, "search is unavailable on landing")

	v = typeText(t, v, "sugar")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	v = settle(t, v, cmd)

	v, _ = press(t, v, alt('f'))
	require.True(t, v.showSearch)
	assert.Len(t, v.searchResults, 2)

	v = typeText(t, v, "salt")
	require.NotEmpty(t, v.searchResults)
	assert.Equal(t, "Salt", v.searchResults[0].Finding.Name)

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.showSearch)
	assert.Equal(t, 1, v.highlightedMessageIdx)
}

func TestAppView_HelpToggle(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	v, _ = press(t, v, alt('h'))
	require.True(t, v.showHelp)
	assert.Contains(t, stripANSI(v.View()), "Keyboard Shortcuts")

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.showHelp)
}

func TestAppView_StaleCardRenderDropped(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	model, _ := v.Update(cardRenderedMsg{MessageID: "m1", Width: 42, Rendered: "old"})
	v = model.(AppView)
	_, ok := v.rendered["m1"]
	assert.False(t, ok)

	model, _ = v.Update(cardRenderedMsg{MessageID: "m1", Width: v.width, Rendered: "new"})
	v = model.(AppView)
	assert.Equal(t, "new", v.rendered["m1"])
}

func TestAppView_Quit(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)

	_, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppView_NotReady(t *testing.T) {
	m := appmodel.NewModel(nil, nil, "test")
	v := NewAppView(m, Options{})
	assert.True(t, strings.HasPrefix(v.View(), "Loading"))
}

func TestAppView_FlashTick(t *testing.T) {
	v, _ := newTestView(t, testutil.ReasoningResponseV2)
	v.highlightedMessageIdx = 1
	v.highlightFlashCount = 1

	model, cmd := v.Update(flashTickMsg{})
	v = model.(AppView)
	assert.Equal(t, 2, v.highlightFlashCount)
	assert.NotNil(t, cmd, "flash keeps ticking")

	v.highlightFlashCount = 6
	model, _ = v.Update(flashTickMsg{})
	v = model.(AppView)
	assert.Equal(t, -1, v.highlightedMessageIdx)
	assert.Zero(t, v.highlightFlashCount)
}
