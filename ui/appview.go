package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"ingredi/capture"
	"ingredi/config"
	appmodel "ingredi/model"
	"ingredi/provider"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// Capture adapters
	camera *capture.Camera
	voice  *capture.Voice

	keys *config.KeyBindingsConfig
	log  *zap.Logger

	// UI Components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp bool

	// Capture overlays
	cameraPicker FilePickerState
	voiceState   VoiceState

	// Finding search
	showSearch        bool
	searchInput       textinput.Model
	searchResults     []appmodel.FindingMatch
	selectedSearchIdx int
	searchScrollIdx   int

	highlightedMessageIdx int
	highlightFlashCount   int

	// Markdown renderings of AI cards keyed by message ID
	rendered map[string]string

	// Acknowledge modal (capture errors)
	showAcknowledgeModal  bool
	acknowledgeModalTitle string
	acknowledgeModalMsg   string
	acknowledgeModalType  ModalType

	backendStatus string
	statusFlash   string
	statusSeq     int
}

// Options wires the optional collaborators of the view
type Options struct {
	Camera      *capture.Camera
	Voice       *capture.Voice
	KeyBindings *config.KeyBindingsConfig
	Logger      *zap.Logger
	PickerDir   string
}

func NewAppView(dataModel *appmodel.Model, opts Options) AppView {
	keys := opts.KeyBindings
	if keys == nil {
		keys = config.DefaultKeyBindings()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste an ingredient list or ask a question..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone submits (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	searchInput := textinput.New()
	searchInput.Prompt = "Search: "
	searchInput.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(successColor)

	return AppView{
		dataModel:             dataModel,
		camera:                opts.Camera,
		voice:                 opts.Voice,
		keys:                  keys,
		log:                   log,
		viewport:              viewport.New(0, 0),
		textarea:              ta,
		loadingSpinner:        sp,
		cameraPicker:          newCameraPicker(opts.PickerDir),
		voiceState:            NewVoiceState(),
		searchInput:           searchInput,
		highlightedMessageIdx: -1,
		rendered:              make(map[string]string),
	}
}

func (a AppView) Init() tea.Cmd {
	var analyzer appmodel.Analyzer
	if a.dataModel.Gateway != nil {
		analyzer = a.dataModel.Gateway.Analyzer()
	}
	return tea.Batch(
		textarea.Blink,
		provider.PingBackend(analyzer),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading ingredi..."
	}

	// Modal rendering order (top to bottom layers):
	// acknowledge, help, search, then the controller's view
	if a.showAcknowledgeModal {
		return RenderAcknowledgeModal(
			a.acknowledgeModalTitle,
			a.acknowledgeModalMsg,
			a.acknowledgeModalType,
			a.width,
			a.height,
		)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showSearch {
		return a.renderFindingSearch(a.width, a.height)
	}

	switch a.dataModel.View() {
	case appmodel.ViewCaptureCamera:
		return RenderFilePickerModal(a.cameraPicker, a.width, a.height)
	case appmodel.ViewCaptureVoice:
		return renderVoiceOverlay(a.voiceState, a.width, a.height)
	case appmodel.ViewLanding:
		return a.renderLanding()
	default:
		return a.renderChat()
	}
}

func (a AppView) renderChat() string {
	backend := "offline"
	if a.dataModel.Gateway != nil {
		backend = a.dataModel.Gateway.BackendName()
	}
	title := AssistantStyle.Render("ingredi") + TitleStyle.Render(fmt.Sprintf(" - %s", backend))
	if a.dataModel.IsTransitioning() {
		title += DimStyle.Render(" ·")
	}
	if a.statusFlash != "" {
		title += UserStyle.Render("  " + a.statusFlash)
	}

	status := formatStatusBar(
		a.keys.DisplayActionKey("quit"), "Quit",
		a.keys.DisplayActionKey("open_camera"), "Camera",
		a.keys.DisplayActionKey("open_voice"), "Voice",
		a.keys.DisplayActionKey("search_findings"), "Search",
		a.keys.DisplayActionKey("yank_last_result"), "Copy",
		"Alt+Enter", "New Line",
		"Enter", "Send",
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.viewport.View(),
		a.textarea.View(),
		status,
	)
}

// closeAllModals dismisses help, search and acknowledge layers
func (a *AppView) closeAllModals() {
	a.showHelp = false
	a.showSearch = false
	a.showAcknowledgeModal = false
	if a.searchInput.Focused() {
		a.searchInput.Blur()
	}
}

func (a *AppView) showAcknowledge(title, msg string, modalType ModalType) {
	a.showAcknowledgeModal = true
	a.acknowledgeModalTitle = title
	a.acknowledgeModalMsg = msg
	a.acknowledgeModalType = modalType
}
