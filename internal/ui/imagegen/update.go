// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagegen provides the image generation panel for the TUI.
package imagegen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles Bubble Tea messages for the image panel.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil

	case GeneratedMsg:
		p.generating = false
		p.typing.Stop()
		p.lastPrompt = msg.Prompt
		p.lastImage = msg.Image
		p.lastErr = msg.Err
		p.savedPath = ""
		return p, nil

	case SavedMsg:
		if msg.Err != nil {
			p.lastErr = msg.Err
		} else {
			p.savedPath = msg.Path
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.typing, cmd = p.typing.Update(msg)
	return p, cmd
}

// handleKey routes keyboard input.
func (p *Panel) handleKey(msg tea.KeyMsg) (*Panel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return p.submit()

	case tea.KeyCtrlS:
		return p, p.saveCmd()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// submit starts an image generation with the current prompt. Submission is
// gated while a generation is already running; the gate is set here before
// the generate command runs, so two submissions in the same frame cannot
// both start.
func (p *Panel) submit() (*Panel, tea.Cmd) {
	prompt := strings.TrimSpace(p.input.Value())
	if prompt == "" || p.generating {
		return p, nil
	}

	p.generating = true
	p.input.Reset()
	p.lastErr = nil
	p.savedPath = ""
	return p, tea.Batch(
		p.generateCmd(prompt),
		p.typing.Start(),
	)
}
