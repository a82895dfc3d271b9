// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Sinhala GPT TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with feature tabs
// =============================================================================

// Header renders the title bar and the feature tab strip.
type Header struct {
	Title     string
	Subtitle  string
	Tabs      []string
	ActiveTab int
	Width     int
}

// NewHeader creates a Header component with default values.
func NewHeader() *Header {
	return &Header{
		Title: "Sinhala GPT",
		Width: 80,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTabs sets the feature tab labels.
func (h *Header) SetTabs(tabs []string) {
	h.Tabs = tabs
}

// SetActiveTab marks the active feature tab by index.
func (h *Header) SetActiveTab(index int) {
	h.ActiveTab = index
}

// View renders the header component.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brandStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Teal)
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Indigo)

	brand := accentStyle.Render("< ") +
		brandStyle.Render(h.Title) +
		accentStyle.Render(" >")

	if h.Subtitle != "" {
		subStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Italic(true)
		brand += " " + subStyle.Render(h.Subtitle)
	}

	titleBar := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Background(styles.SurfaceDim).
		Padding(0, 1).
		Render(brand)

	if len(h.Tabs) == 0 {
		return titleBar
	}

	tabStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Padding(0, 2)
	activeStyle := lipgloss.NewStyle().
		Foreground(styles.TextInverse).
		Background(styles.Indigo).
		Bold(true).
		Padding(0, 2)

	var rendered []string
	for i, tab := range h.Tabs {
		if i == h.ActiveTab {
			rendered = append(rendered, activeStyle.Render(tab))
		} else {
			rendered = append(rendered, tabStyle.Render(tab))
		}
	}

	tabBar := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(rendered, " "))

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, tabBar)
}
