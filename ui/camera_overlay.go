package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ingredi/capture"
	"ingredi/config"
)

type FilePickerConfig struct {
	Title          string
	AllowedTypes   []string
	StartDirectory string
	ShowHidden     bool
}

// FilePickerState backs the camera overlay: pick a label photo, then wait
// for OCR while the spinner runs.
type FilePickerState struct {
	Active     bool
	Picker     filepicker.Model
	Config     FilePickerConfig
	Processing bool
	Spinner    spinner.Model
	Selected   string

	cancel context.CancelFunc
}

func NewFilePickerState(cfg FilePickerConfig) FilePickerState {
	fp := filepicker.New()
	fp.AllowedTypes = cfg.AllowedTypes
	fp.Height = 10
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.ShowHidden = cfg.ShowHidden

	startDir := cfg.StartDirectory
	if startDir == "" {
		startDir = config.GetHomeDir()
	}
	fp.CurrentDirectory = startDir

	fp.Styles.Directory = lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)
	fp.Styles.File = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15"))
	fp.Styles.Selected = lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().
		Foreground(successColor)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return FilePickerState{
		Picker:  fp,
		Config:  cfg,
		Spinner: sp,
	}
}

func newCameraPicker(startDir string) FilePickerState {
	return NewFilePickerState(FilePickerConfig{
		Title:          "📷 Scan Ingredient Label",
		AllowedTypes:   capture.ImageTypes,
		StartDirectory: startDir,
	})
}

// Activate opens the picker and starts reading the current directory
func (fps *FilePickerState) Activate() tea.Cmd {
	fps.Active = true
	fps.Processing = false
	fps.Selected = ""
	return fps.Picker.Init()
}

// StartProcessing marks an image as handed to OCR. The returned context is
// cancelled by Reset when the overlay closes.
func (fps *FilePickerState) StartProcessing(path string) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	fps.cancel = cancel
	fps.Processing = true
	fps.Selected = path
	return ctx
}

func (fps *FilePickerState) Reset() {
	if fps.cancel != nil {
		fps.cancel()
		fps.cancel = nil
	}
	fps.Active = false
	fps.Processing = false
	fps.Selected = ""
}

func RenderFilePickerModal(state FilePickerState, width, height int) string {
	if state.Processing {
		return renderFilePickerProcessing(state, width, height)
	}
	return renderFilePickerInput(state.Picker, state.Config.Title, width, height)
}

func pickerModalWidth(width int) int {
	modalWidth := width - 10
	if modalWidth < 10 {
		modalWidth = 10
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	return modalWidth
}

func renderFilePickerInput(picker filepicker.Model, title string, width, height int) string {
	// Guard clause: prevent rendering in tiny terminals
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := pickerModalWidth(width)

	contentStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Align(lipgloss.Left)

	var messageLines []string
	messageLines = append(messageLines, contentStyle.Render("  "+DimStyle.Render(picker.CurrentDirectory)))
	messageLines = append(messageLines, strings.Repeat(" ", modalWidth))
	for _, line := range strings.Split(picker.View(), "\n") {
		messageLines = append(messageLines, contentStyle.Render("  "+strings.TrimRight(line, " ")))
	}

	footer := FormatFooter("j/k", "Navigate", "h/l", "Back/Open", "Enter", "Scan", "Esc", "Cancel")

	return RenderThreeSectionModal(title, messageLines, footer, ModalTypeInfo, modalWidth, width, height)
}

func renderFilePickerProcessing(state FilePickerState, width, height int) string {
	if width < 20 || height < 10 {
		return "Terminal too small"
	}

	modalWidth := pickerModalWidth(width)

	lineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth)

	messageLines := []string{
		lineStyle.Render(fmt.Sprintf("%s Reading ingredients...", state.Spinner.View())),
		DimStyle.Width(modalWidth).Align(lipgloss.Center).Render(truncateMiddle(state.Selected, modalWidth-4)),
	}

	return RenderThreeSectionModal(state.Config.Title, messageLines, "Press Esc to cancel", ModalTypeInfo, modalWidth, width, height)
}
