// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagegen provides the image generation panel for the TUI.
package imagegen

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sinhalagpt-tui/internal/engine"
	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/components"
	"github.com/jeranaias/sinhalagpt-tui/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// GeneratedMsg delivers the result of an image generation request.
type GeneratedMsg struct {
	Prompt string
	Image  *gemini.GeneratedImage
	Err    error
}

// SavedMsg confirms that the last image was written to disk.
type SavedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// IMAGE PANEL MODEL
// =============================================================================

// Panel is the Bubble Tea model for the image generation feature.
type Panel struct {
	engine *engine.Engine

	input  textinput.Model
	typing components.TypingIndicator

	// True from submit until GeneratedMsg. The engine's loading flag flips
	// inside the generate goroutine, so the submit gate needs a flag set
	// synchronously in the update loop.
	generating bool

	// Last result
	lastPrompt string
	lastImage  *gemini.GeneratedImage
	lastErr    error
	savedPath  string

	downloadDir string

	width  int
	height int
}

// New creates an image panel wired to its own engine.
func New(gateway engine.Gateway, downloadDir string) *Panel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the image you want..."
	ti.CharLimit = 2048
	ti.Focus()

	typing := components.NewTypingIndicator()
	typing.SetMessage("Generating image")

	return &Panel{
		engine:      engine.New(gateway),
		input:       ti,
		typing:      typing,
		downloadDir: downloadDir,
		width:       80,
		height:      24,
	}
}

// Loading reports whether a generation is in flight.
func (p *Panel) Loading() bool {
	return p.generating || p.engine.Loading()
}

// SetSize updates the panel layout for a terminal resize.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width - 4
}

// Init is a no-op; the panel has no background listeners.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// generateCmd runs one image generation request.
func (p *Panel) generateCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		img, err := p.engine.GenerateImage(context.Background(), prompt)
		return GeneratedMsg{Prompt: prompt, Image: img, Err: err}
	}
}

// saveCmd writes the last generated image into the download directory.
func (p *Panel) saveCmd() tea.Cmd {
	img := p.lastImage
	if img == nil {
		return nil
	}

	dir := p.downloadDir
	return func() tea.Msg {
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return SavedMsg{Err: err}
			}
			dir = home
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return SavedMsg{Err: err}
		}

		name := "sinhalagpt-" + time.Now().Format("20060102-150405") + ".jpg"
		path := filepath.Join(dir, name)
		if err := util.AtomicWriteFile(path, img.Data, 0644); err != nil {
			return SavedMsg{Err: err}
		}
		return SavedMsg{Path: path}
	}
}
