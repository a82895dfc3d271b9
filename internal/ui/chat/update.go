// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the TUI.
package chat

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sinhalagpt-tui/internal/model"
	"github.com/jeranaias/sinhalagpt-tui/internal/voice"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update handles Bubble Tea messages for the chat panel.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		return p, nil

	case TranscriptChangedMsg:
		p.refreshViewport()
		// Re-arm: exactly one listener stays pending on the change channel.
		return p, p.waitForChange()

	case StreamDoneMsg:
		p.sending = false
		p.typing.Stop()
		p.refreshViewport()
		if msg.Err != nil {
			p.statusMsg = "Could not send: " + msg.Err.Error()
		}
		return p, nil

	case VoiceResultMsg:
		p.recording = false
		switch {
		case errors.Is(msg.Err, voice.ErrNoSpeech):
			p.statusMsg = "No speech detected"
		case msg.Err != nil:
			p.statusMsg = "Voice capture failed: " + msg.Err.Error()
		default:
			// A finalized utterance is sent directly, through the same gate
			// as a typed submission.
			p.input.SetValue(msg.Transcript)
			p.input.CursorEnd()
			return p.submit()
		}
		return p, nil

	case CopyCompleteMsg:
		if msg.Err != nil {
			p.statusMsg = "Copy failed: " + msg.Err.Error()
		} else {
			p.statusMsg = "Copied last reply"
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	// Spinner ticks and other component messages.
	var cmd tea.Cmd
	p.typing, cmd = p.typing.Update(msg)
	cmds = append(cmds, cmd)

	p.viewport, cmd = p.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return p, tea.Batch(cmds...)
}

// handleKey routes keyboard input.
func (p *Panel) handleKey(msg tea.KeyMsg) (*Panel, tea.Cmd) {
	// Any keystroke clears a stale status line.
	p.statusMsg = ""

	switch {
	case key.Matches(msg, p.keyMap.Submit):
		return p.submit()

	case key.Matches(msg, p.keyMap.Voice):
		if p.recognizer == nil || !p.recognizer.Supported() || p.recording {
			return p, nil
		}
		p.recording = true
		return p, p.voiceCmd()

	case key.Matches(msg, p.keyMap.Copy):
		return p, p.copyLastReply()

	case key.Matches(msg, p.keyMap.PageUp):
		p.viewport.HalfViewUp()
		return p, nil

	case key.Matches(msg, p.keyMap.PageDown):
		p.viewport.HalfViewDown()
		return p, nil

	case key.Matches(msg, p.keyMap.Up):
		p.viewport.LineUp(1)
		return p, nil

	case key.Matches(msg, p.keyMap.Down):
		p.viewport.LineDown(1)
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// submit starts a chat turn with the current input. Submission is gated while
// a turn is already streaming. The gate is p.sending, set here before the
// send command runs, so two submissions in the same frame cannot both start.
func (p *Panel) submit() (*Panel, tea.Cmd) {
	text := strings.TrimSpace(p.input.Value())
	if text == "" || p.sending {
		return p, nil
	}

	p.sending = true
	p.input.Reset()
	return p, tea.Batch(
		p.sendCmd(text),
		p.typing.Start(),
	)
}

// copyLastReply copies the newest completed model reply to the clipboard.
func (p *Panel) copyLastReply() tea.Cmd {
	transcript := p.engine.Transcript()
	for i := len(transcript) - 1; i >= 0; i-- {
		msg := transcript[i]
		if msg.Role == model.RoleModel && !msg.IsImage && msg.Content != "" {
			content := msg.Content
			return func() tea.Msg {
				return CopyCompleteMsg{Err: clipboard.WriteAll(content)}
			}
		}
	}
	return nil
}
