// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the TUI.
package chat

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/sinhalagpt-tui/internal/engine"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/components"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
	"github.com/jeranaias/sinhalagpt-tui/internal/voice"
)

// =============================================================================
// CHAT PANEL MODEL
// =============================================================================

// Panel is the Bubble Tea model for one chat feature. Each feature keeps its
// own engine, so switching features starts a fresh transcript and session.
type Panel struct {
	// Conversation engine
	engine      *engine.Engine
	instruction string

	// Engine change notifications, coalesced through a 1-buffered channel so
	// rapid streaming updates collapse into single re-renders. The done
	// channel releases the pending listener when the panel is discarded.
	changeCh  chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Voice capture (nil recognizer means the shortcut is hidden)
	recognizer voice.Recognizer
	recording  bool

	// True from submit until StreamDoneMsg. The engine's own loading flag
	// flips inside the send goroutine, so the submit gate needs a flag that
	// is set synchronously in the update loop.
	sending bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	typing   components.TypingIndicator
	list     *components.MessageList
	keyMap   KeyMap

	// Markdown rendering for prose segments
	renderer *glamour.TermRenderer

	// Dimensions
	width  int
	height int

	// Transient status line (copy confirmations, voice errors)
	statusMsg string
}

// Config holds the panel's construction parameters.
type Config struct {
	Gateway     engine.Gateway
	Instruction string
	Placeholder string
	Recognizer  voice.Recognizer
	EmptyHint   string
}

// New creates a chat panel wired to its own engine.
func New(cfg Config) *Panel {
	p := &Panel{
		instruction: cfg.Instruction,
		changeCh:    make(chan struct{}, 1),
		done:        make(chan struct{}),
		recognizer:  cfg.Recognizer,
		keyMap:      DefaultKeyMap(),
	}

	p.engine = engine.New(cfg.Gateway, engine.WithOnChange(p.notifyChange))

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = cfg.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = "Type a message..."
	}
	ti.CharLimit = 4096
	ti.Focus()
	p.input = ti

	p.viewport = viewport.New(80, 20)
	p.typing = components.NewTypingIndicator()

	p.list = components.NewMessageList()
	if cfg.EmptyHint != "" {
		p.list.EmptyHint = cfg.EmptyHint
	}
	p.list.Markdown = p.renderMarkdown

	p.width = 80
	p.height = 24
	p.rebuildRenderer()

	return p
}

// notifyChange forwards an engine mutation into the Bubble Tea loop.
// Non-blocking: a pending notification already covers this change.
func (p *Panel) notifyChange() {
	select {
	case p.changeCh <- struct{}{}:
	default:
	}
}

// Engine exposes the panel's engine, used by the image feature and tests.
func (p *Panel) Engine() *engine.Engine {
	return p.engine
}

// Loading reports whether a turn is in flight.
func (p *Panel) Loading() bool {
	return p.sending || p.engine.Loading()
}

// SetSize updates the panel layout for a terminal resize.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height

	// Input row, status row, and typing row sit below the viewport.
	vpHeight := height - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	p.viewport.Width = width
	p.viewport.Height = vpHeight
	p.input.Width = width - 4
	p.list.SetWidth(width - 2)

	p.rebuildRenderer()
	p.refreshViewport()
}

// rebuildRenderer recreates the glamour renderer at the current width.
func (p *Panel) rebuildRenderer() {
	wrap := p.width - 10
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		p.renderer = nil
		return
	}
	p.renderer = r
}

// renderMarkdown renders prose through glamour, falling back to the raw text
// when rendering fails.
func (p *Panel) renderMarkdown(text string) string {
	if p.renderer == nil {
		return text
	}
	out, err := p.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// refreshViewport re-renders the transcript into the viewport and follows the
// newest message.
func (p *Panel) refreshViewport() {
	p.list.Streaming = p.Loading()
	p.list.SetMessages(p.engine.Transcript())
	p.viewport.SetContent(p.list.View())
	p.viewport.GotoBottom()
}

// Init starts the change listener.
func (p *Panel) Init() tea.Cmd {
	return p.waitForChange()
}

// Close releases the pending change listener. Called when the panel is
// discarded; safe to call more than once.
func (p *Panel) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// waitForChange blocks on the next coalesced transcript notification, or
// returns nothing once the panel is closed.
func (p *Panel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-p.changeCh:
			return TranscriptChangedMsg{}
		case <-p.done:
			return nil
		}
	}
}

// sendCmd runs one chat turn. The engine blocks until the stream finishes;
// transcript updates arrive through the change channel in the meantime.
func (p *Panel) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		err := p.engine.SendMessage(context.Background(), text, p.instruction)
		return StreamDoneMsg{Err: err}
	}
}

// voiceCmd captures one utterance from the external recognizer.
func (p *Panel) voiceCmd() tea.Cmd {
	return func() tea.Msg {
		transcript, err := p.recognizer.Capture(context.Background())
		return VoiceResultMsg{Transcript: transcript, Err: err}
	}
}

// statusLine renders the transient status message, if any.
func (p *Panel) statusLine() string {
	if p.statusMsg == "" {
		return ""
	}
	return styles.RenderInfo(p.statusMsg)
}
