package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"ingredi/model"
)

// Section titles of a finding card
const (
	titleWhatItIs    = "Why this matters"
	titleWhyItIsUsed = "Who might care about this"
	titleTradeoffs   = "Trade-offs to be aware of"
	titleUncertainty = "What we know and don't know"
	titleNutrition   = "Overall nutrition"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
	ansiRegex       = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Messages()
	if len(messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("No messages yet."))
		return
	}

	var content strings.Builder

	for i, msg := range messages {
		highlightPrefix := ""
		if i == a.highlightedMessageIdx && a.highlightFlashCount%2 == 1 {
			highlightPrefix = HighlightStyle.Render(">>> ")
		}

		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		if msg.Role == model.RoleUser {
			content.WriteString(formatUserMessage(highlightPrefix, timestamp, UserStyle.Render("You"), msg.Content))
			continue
		}

		rendered, ok := a.rendered[msg.ID]
		if !ok {
			// Plain card until the markdown render lands
			rendered = renderAICard(msg.AI, a.width, plainSection)
		}
		content.WriteString(fmt.Sprintf("%s%s %s\n%s\n\n", highlightPrefix, timestamp, AssistantStyle.Render("ingredi"), rendered))
	}

	if a.dataModel.IsLoading() {
		content.WriteString(a.renderSkeleton())
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderSkeleton is the placeholder card shown while a request is outstanding
func (a *AppView) renderSkeleton() string {
	bar := DimStyle.Render("░░░░░░░░░░░░░░░░░░░░░░░░")
	short := DimStyle.Render("░░░░░░░░░░░░")
	return fmt.Sprintf("%s %s\n%s\n%s\n%s\n\n",
		DimStyle.Render(time.Now().Format("[15:04]")),
		AssistantStyle.Render("ingredi"),
		a.loadingSpinner.View()+" Analyzing ingredients...",
		bar,
		short,
	)
}

func formatUserMessage(highlightPrefix, timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s%s %s %s\n", highlightPrefix, bar, timestamp, role))

	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

// sectionRenderer renders the body text of one card section at width
type sectionRenderer func(text string, width int) string

func plainSection(text string, width int) string {
	return indent(wordWrap(text, width), "  ")
}

func markdownSection(text string, width int) string {
	return indent(strings.TrimRight(renderMarkdown(text, width), "\n"), "  ")
}

// renderAICard lays out one AI payload: greeting, one block per finding in
// order, overall nutrition, then the conclusion. Empty sections are omitted.
func renderAICard(p *model.AIPayload, width int, section sectionRenderer) string {
	if p == nil {
		return ""
	}
	if p.IsError() {
		return ErrorStyle.Render("⚠ " + p.OverallConclusion)
	}

	bodyWidth := width - 6
	if bodyWidth < 20 {
		bodyWidth = 20
	}

	var b strings.Builder

	if p.Greeting != "" {
		b.WriteString(GreetingStyle.Render(wordWrap(p.Greeting, bodyWidth)))
		b.WriteString("\n\n")
	}

	for _, f := range p.Ingredients {
		header := IngredientNameStyle.Render("▌ " + f.Name)
		if badge := SeverityBadge(f.Severity); badge != "" {
			header += " " + badge
		}
		b.WriteString(header)
		b.WriteString("\n")

		for _, s := range []struct{ title, body string }{
			{titleWhatItIs, f.WhatItIs},
			{titleWhyItIsUsed, f.WhyItIsUsed},
			{titleTradeoffs, f.Tradeoffs},
			{titleUncertainty, f.Uncertainty},
		} {
			if s.body == "" {
				continue
			}
			b.WriteString("  " + SectionTitleStyle.Render(s.title))
			b.WriteString("\n")
			b.WriteString(section(s.body, bodyWidth))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if p.OverallNutrition != "" {
		b.WriteString(SectionTitleStyle.Render(titleNutrition))
		b.WriteString("\n")
		b.WriteString(section(p.OverallNutrition, bodyWidth))
		b.WriteString("\n\n")
	}

	if p.OverallConclusion != "" {
		b.WriteString(section(p.OverallConclusion, bodyWidth))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderCardAsync renders the markdown form of an AI card off the update loop
func (a AppView) renderCardAsync(msg model.Message, width int) tea.Cmd {
	log := a.log
	return func() tea.Msg {
		start := time.Now()
		rendered := renderAICard(msg.AI, width, markdownSection)
		log.Debug("card rendered", zap.String("message", msg.ID), zap.Duration("elapsed", time.Since(start)))
		return cardRenderedMsg{MessageID: msg.ID, Width: width, Rendered: rendered}
	}
}

// renderAllCards re-renders every AI message, e.g. after a resize
func (a AppView) renderAllCards() tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range a.dataModel.Messages() {
		if msg.Role == model.RoleAI {
			cmds = append(cmds, a.renderCardAsync(msg, a.width))
		}
	}
	return tea.Batch(cmds...)
}

func renderMarkdown(content string, width int) string {
	content = preprocessLinks(content)

	// Autolink disabled so URLs stay plain text for the terminal to detect
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	rendered := gomarkdown.Render(p.Parse([]byte(content)), r)

	return postProcessMarkdown(string(rendered))
}

func postProcessMarkdown(rendered string) string {
	rendered = fixInlineCode(rendered)
	return fixMarkdownLinks(rendered)
}

// preprocessLinks strips markdown link syntax [text](url) to just url
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

// fixInlineCode turns go-term-markdown's blue background inline code into red text
func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	return urlRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// stripANSI removes ANSI escape codes for accurate length calculation
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// truncateMiddle shortens s to width cells, keeping both ends
func truncateMiddle(s string, width int) string {
	if width <= 3 || runewidth.StringWidth(s) <= width {
		return s
	}
	half := (width - 1) / 2
	runes := []rune(s)
	head := runewidth.Truncate(s, half, "")
	tail := ""
	for i := len(runes) - 1; i >= 0; i-- {
		candidate := string(runes[i:])
		if runewidth.StringWidth(candidate) > width-1-runewidth.StringWidth(head) {
			break
		}
		tail = candidate
	}
	return head + "…" + tail
}
