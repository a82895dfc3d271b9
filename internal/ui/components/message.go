// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Sinhala GPT TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sinhalagpt-tui/internal/model"
	"github.com/jeranaias/sinhalagpt-tui/internal/segment"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
	"github.com/jeranaias/sinhalagpt-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MarkdownFunc renders markdown text for display. The chat panel injects a
// glamour renderer here; a nil func means plain passthrough.
type MarkdownFunc func(string) string

// MessageBubble renders one transcript entry as a styled bubble.
// Model replies are split into prose and fenced-code segments so that code
// gets its own highlighted block instead of flowing through markdown.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	Streaming     bool
	Markdown      MarkdownFunc
}

// NewMessageBubble creates a bubble for a transcript entry.
func NewMessageBubble(msg model.Message) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsImage {
		return b.renderImageBubble()
	}
	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleModel:
		return b.renderModelBubble()
	default:
		return b.renderGenericBubble()
	}
}

// ==========================================================================
// USER BUBBLE - Teal tones, right-aligned
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.UserBubbleFg).
		Background(styles.UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.UserBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		Render(wrapped)

	header := b.renderHeader()

	// Right-align the bubble with left margin.
	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(
		lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// MODEL BUBBLE - Indigo tones, segment-driven rendering
// ==========================================================================

func (b *MessageBubble) renderModelBubble() string {
	content := b.Message.Content

	var cursor string
	if b.Streaming {
		cursor = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Blink(true).
			Render("_")
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	var parts []string
	for _, seg := range segment.Split(content) {
		switch seg.Kind {
		case segment.KindCodeBlock:
			cb := NewCodeBlock(seg)
			cb.SetMaxWidth(maxContentWidth)
			parts = append(parts, cb.Render())
		default:
			text := seg.Text
			if b.Markdown != nil {
				text = b.Markdown(text)
			} else {
				text = wordWrap(text, maxContentWidth)
			}
			parts = append(parts, strings.TrimRight(text, "\n"))
		}
	}

	body := strings.Join(parts, "\n")
	if body == "" {
		body = "..."
	}
	body += cursor

	contentWidth := minInt(maxLineWidth(body)+4, b.Width-8)

	bubble := lipgloss.NewStyle().
		Foreground(styles.ModelBubbleFg).
		Background(styles.ModelBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.ModelBubbleBorder).
		Padding(0, 2).
		Width(contentWidth).
		MarginRight(4).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), bubble)
}

// ==========================================================================
// IMAGE BUBBLE - Framed note pointing at the generated file
// ==========================================================================

func (b *MessageBubble) renderImageBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "generated image"
	}

	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Indigo).
		Padding(0, 2).
		Render(styles.StatusIndicators.Info + " " + content)

	return lipgloss.JoinVertical(lipgloss.Left, b.renderHeader(), frame)
}

// ==========================================================================
// GENERIC BUBBLE - Fallback for unknown roles
// ==========================================================================

func (b *MessageBubble) renderGenericBubble() string {
	content := b.Message.Content
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 10
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)

	return lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 2).
		Render(wrapped)
}

// ==========================================================================
// HELPER METHODS
// ==========================================================================

// renderHeader renders the sender label plus an optional dimmed timestamp.
func (b *MessageBubble) renderHeader() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	header := labelStyle.Render(b.Message.Role.DisplayName())

	if b.ShowTimestamp {
		if ts := b.renderTimestamp(); ts != "" {
			header += " " + ts
		}
	}
	return header
}

// renderTimestamp renders a dimmed timestamp.
func (b *MessageBubble) renderTimestamp() string {
	ts := b.Message.Timestamp
	if ts.IsZero() {
		return ""
	}

	now := time.Now()
	var formatted string
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		formatted = ts.Format("3:04 PM")
	} else {
		formatted = ts.Format("Jan 2, 3:04 PM")
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(formatted)
}

// ==========================================================================
// UTILITY FUNCTIONS
// ==========================================================================

// wordWrap wraps text to fit within the specified display width.
// UNICODE: widths are computed per cell, so Sinhala and CJK text wrap correctly.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if util.StringWidth(currentLine)+1+util.StringWidth(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a transcript snapshot as a column of bubbles.
type MessageList struct {
	Messages       []model.Message
	Width          int
	ShowTimestamps bool
	Streaming      bool
	Markdown       MarkdownFunc
	EmptyHint      string
}

// NewMessageList creates an empty message list.
func NewMessageList() *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		EmptyHint:      "No messages yet. Say something!",
	}
}

// SetMessages sets the transcript snapshot to display.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return emptyStyle.Render(ml.EmptyHint)
	}

	var bubbles []string
	for i, msg := range ml.Messages {
		bubble := NewMessageBubble(msg)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamps
		bubble.Markdown = ml.Markdown
		// Only the trailing model entry shows the streaming cursor.
		bubble.Streaming = ml.Streaming && i == len(ml.Messages)-1 && msg.Role == model.RoleModel

		bubbles = append(bubbles, bubble.View())
	}

	return strings.Join(bubbles, "\n")
}
