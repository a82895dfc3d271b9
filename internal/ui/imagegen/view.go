// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagegen provides the image generation panel for the TUI.
package imagegen

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
	"github.com/jeranaias/sinhalagpt-tui/internal/util"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the image panel: result area, typing indicator, input row,
// and the shortcut bar.
func (p *Panel) View() string {
	var b strings.Builder

	b.WriteString(p.renderResult())
	b.WriteString("\n")

	if p.typing.IsActive() {
		b.WriteString(p.typing.View())
	}
	b.WriteString("\n")

	inputRow := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Width(p.width).
		Render(p.input.View())
	b.WriteString(inputRow)
	b.WriteString("\n")

	b.WriteString(p.shortcutBar())

	return b.String()
}

// renderResult renders the last generation outcome.
func (p *Panel) renderResult() string {
	if p.lastErr != nil {
		return p.renderError()
	}

	if p.lastImage == nil {
		hint := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(p.width).
			Align(lipgloss.Center).
			Padding(2, 0)
		return hint.Render("Describe an image and press Enter to generate it.")
	}

	metaStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true)

	lines := []string{
		labelStyle.Render("Prompt: ") + p.lastPrompt,
		metaStyle.Render("Type:   " + p.lastImage.MIMEType),
		metaStyle.Render("Size:   " + strconv.Itoa(p.lastImage.Size()) + " bytes"),
		metaStyle.Render("Data:   " + util.TruncateRunes(p.lastImage.DataReference(), 48)),
	}

	if p.savedPath != "" {
		lines = append(lines, styles.RenderSuccess("Saved to "+p.savedPath))
	} else {
		lines = append(lines, metaStyle.Render("Press Ctrl+S to save."))
	}

	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Indigo).
		Padding(1, 2).
		Width(p.width - 4)

	return frame.Render(strings.Join(lines, "\n"))
}

// renderError renders a failed generation.
func (p *Panel) renderError() string {
	message := p.lastErr.Error()
	if gemini.IsNoImages(p.lastErr) {
		message = "No image came back. The model may have refused the prompt; try rephrasing it."
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Rose).
		Padding(1, 2).
		Width(p.width - 4)

	title := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true).
		Render(styles.StatusIndicators.Error + " Image generation failed")

	return box.Render(title + "\n" + message)
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
		{"Enter", "generate"},
		{"C-s", "save image"},
		{"Tab", "switch feature"},
		{"C-c", "quit"},
	}

	var parts []string
	for _, s := range shortcuts {
		parts = append(parts, keyStyle.Render(s.key)+" "+descStyle.Render(s.desc))
	}

	return lipgloss.NewStyle().
		Width(p.width).
		Render(strings.Join(parts, "  "))
}
