// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imagegen provides the image generation panel for the TUI.
package imagegen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sinhalagpt-tui/internal/engine"
	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type stubGateway struct {
	image *gemini.GeneratedImage
	err   error
}

func (g *stubGateway) OpenSession(instruction string, history []gemini.Message) engine.Session {
	return nil
}

func (g *stubGateway) GenerateImage(ctx context.Context, prompt string) (*gemini.GeneratedImage, error) {
	return g.image, g.err
}

func jpegImage() *gemini.GeneratedImage {
	return &gemini.GeneratedImage{
		MIMEType: "image/jpeg",
		Data:     []byte{0xFF, 0xD8, 0xFF, 0xD9},
	}
}

// =============================================================================
// PANEL TESTS
// =============================================================================

func TestSubmitEmptyPromptIsNoop(t *testing.T) {
	p := New(&stubGateway{image: jpegImage()}, t.TempDir())
	p.input.SetValue("  ")

	_, cmd := p.submit()
	assert.Nil(t, cmd)
}

func TestGenerateSuccess(t *testing.T) {
	p := New(&stubGateway{image: jpegImage()}, t.TempDir())
	p.input.SetValue("a kite over the sea")

	_, cmd := p.submit()
	require.NotNil(t, cmd)
	assert.Empty(t, p.input.Value(), "prompt should reset on submit")

	msg := p.generateCmd("a kite over the sea")()
	generated, ok := msg.(GeneratedMsg)
	require.True(t, ok)
	require.NoError(t, generated.Err)
	assert.Equal(t, "image/jpeg", generated.Image.MIMEType)

	p2, _ := p.Update(generated)
	assert.Equal(t, "a kite over the sea", p2.lastPrompt)
	assert.NotNil(t, p2.lastImage)
	assert.False(t, p2.typing.IsActive())
}

func TestSubmitGateIsSynchronous(t *testing.T) {
	p := New(&stubGateway{image: jpegImage()}, t.TempDir())

	p.input.SetValue("a kite over the sea")
	_, first := p.submit()
	require.NotNil(t, first, "first submit should start a generation")

	p.input.SetValue("another kite")
	_, second := p.submit()
	assert.Nil(t, second, "second submit must be gated before the request starts")

	p2, _ := p.Update(GeneratedMsg{Prompt: "a kite over the sea", Image: jpegImage()})
	p2.input.SetValue("next request")
	_, third := p2.submit()
	assert.NotNil(t, third, "gate should reopen once the generation completes")
}

func TestGenerateFailureRendersError(t *testing.T) {
	p := New(&stubGateway{err: gemini.ErrNoImages}, t.TempDir())

	msg := p.generateCmd("anything")()
	generated := msg.(GeneratedMsg)
	require.Error(t, generated.Err)

	p2, _ := p.Update(generated)
	assert.Nil(t, p2.lastImage)

	out := p2.View()
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "rephrasing")
}

func TestSaveWritesImage(t *testing.T) {
	dir := t.TempDir()
	p := New(&stubGateway{image: jpegImage()}, dir)
	p.lastImage = jpegImage()

	cmd := p.saveCmd()
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(SavedMsg)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.True(t, strings.HasPrefix(filepath.Base(saved.Path), "sinhalagpt-"))
	assert.True(t, strings.HasSuffix(saved.Path, ".jpg"))

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, jpegImage().Data, data)
}

func TestSaveWithoutImageIsNoop(t *testing.T) {
	p := New(&stubGateway{}, t.TempDir())
	assert.Nil(t, p.saveCmd())
}

func TestSavedPathShownInView(t *testing.T) {
	p := New(&stubGateway{image: jpegImage()}, t.TempDir())
	p.lastImage = jpegImage()
	p.lastPrompt = "a kite"

	p2, _ := p.Update(SavedMsg{Path: "/tmp/sinhalagpt-x.jpg"})
	assert.Contains(t, p2.View(), "Saved to")
}

func TestResizeUpdatesLayout(t *testing.T) {
	p := New(&stubGateway{}, t.TempDir())

	p2, _ := p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, p2.width)
	assert.Equal(t, 40, p2.height)
}
