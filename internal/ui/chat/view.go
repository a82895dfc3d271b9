// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the chat panel: transcript viewport, typing indicator, input
// row, and the shortcut bar.
func (p *Panel) View() string {
	var b strings.Builder

	b.WriteString(p.viewport.View())
	b.WriteString("\n")

	if p.typing.IsActive() {
		b.WriteString(p.typing.View())
		b.WriteString("\n")
	} else if status := p.statusLine(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
	}

	inputView := p.input.View()
	if p.recording {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextInverse).
			Background(styles.Amber).
			Bold(true).
			Padding(0, 1).
			Render("REC")
		inputView = badge + " " + inputView
	}

	inputRow := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Width(p.width).
		Render(inputView)
	b.WriteString(inputRow)
	b.WriteString("\n")

	b.WriteString(p.shortcutBar())

	return b.String()
}

// shortcutBar renders the bottom help line.
func (p *Panel) shortcutBar() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "send"},
		{"C-y", "copy reply"},
		{"Tab", "switch feature"},
		{"C-c", "quit"},
	}

	var parts []string
	if p.recognizer != nil && p.recognizer.Supported() {
		parts = append(parts, keyStyle.Render("C-r")+" "+descStyle.Render("voice"))
	}
	for _, s := range shortcuts {
		parts = append(parts, keyStyle.Render(s.key)+" "+descStyle.Render(s.desc))
	}

	return lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(p.width).
		Render(strings.Join(parts, "  "))
}
