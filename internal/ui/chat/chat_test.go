// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the TUI.
package chat

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sinhalagpt-tui/internal/engine"
	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/voice"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================

type stubSession struct {
	instruction string
	reply       string
}

func (s *stubSession) Instruction() string { return s.instruction }

func (s *stubSession) StreamMessage(ctx context.Context, text string, cb gemini.StreamCallback) error {
	cb(gemini.StreamChunk{Text: s.reply})
	cb(gemini.StreamChunk{Done: true})
	return nil
}

type stubGateway struct {
	reply string
}

func (g *stubGateway) OpenSession(instruction string, history []gemini.Message) engine.Session {
	return &stubSession{instruction: instruction, reply: g.reply}
}

func (g *stubGateway) GenerateImage(ctx context.Context, prompt string) (*gemini.GeneratedImage, error) {
	return &gemini.GeneratedImage{MIMEType: "image/jpeg", Data: []byte{1}}, nil
}

func newTestPanel() *Panel {
	return New(Config{
		Gateway:     &stubGateway{reply: "hello back"},
		Instruction: "be helpful",
		Placeholder: "say something",
	})
}

// =============================================================================
// PANEL TESTS
// =============================================================================

func TestNewPanelDefaults(t *testing.T) {
	p := newTestPanel()

	require.NotNil(t, p.Engine())
	assert.False(t, p.Loading())
	assert.Equal(t, "say something", p.input.Placeholder)
	assert.NotNil(t, p.Init(), "Init should arm the change listener")
}

func TestNotifyChangeCoalesces(t *testing.T) {
	p := newTestPanel()

	p.notifyChange()
	p.notifyChange()
	p.notifyChange()

	assert.Len(t, p.changeCh, 1, "repeated notifications should collapse into one")
}

func TestSubmitEmptyInputIsNoop(t *testing.T) {
	p := newTestPanel()
	p.input.SetValue("   ")

	_, cmd := p.submit()
	assert.Nil(t, cmd, "whitespace-only input should not start a turn")
}

func TestSubmitClearsInputAndStartsTurn(t *testing.T) {
	p := newTestPanel()
	p.input.SetValue("kohomada")

	_, cmd := p.submit()
	require.NotNil(t, cmd, "submit should return the send command batch")
	assert.Empty(t, p.input.Value(), "input should reset on submit")
	assert.True(t, p.typing.IsActive(), "typing indicator should start")
	assert.True(t, p.Loading(), "panel should report a turn in flight")
}

func TestSubmitGateIsSynchronous(t *testing.T) {
	p := newTestPanel()

	// Two Enter presses in the same frame: the send goroutine from the
	// first has not run yet, so the gate cannot rely on engine state.
	p.input.SetValue("kohomada")
	_, first := p.submit()
	require.NotNil(t, first, "first submit should start a turn")

	p.input.SetValue("kohomada again")
	_, second := p.submit()
	assert.Nil(t, second, "second submit must be gated before the stream starts")

	p2, _ := p.Update(StreamDoneMsg{})
	p2.input.SetValue("next turn")
	_, third := p2.submit()
	assert.NotNil(t, third, "gate should reopen once the turn completes")
}

func TestSendTurnUpdatesTranscript(t *testing.T) {
	p := newTestPanel()

	msg := p.sendCmd("kohomada")()
	done, ok := msg.(StreamDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.Err)

	transcript := p.engine.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "kohomada", transcript[0].Content)
	assert.Equal(t, "hello back", transcript[1].Content)
}

func TestTranscriptChangedRearmsListener(t *testing.T) {
	p := newTestPanel()

	_, cmd := p.Update(TranscriptChangedMsg{})
	assert.NotNil(t, cmd, "transcript change should re-arm the listener")
}

func TestStreamDoneStopsTypingIndicator(t *testing.T) {
	p := newTestPanel()
	p.typing.Start()

	p2, _ := p.Update(StreamDoneMsg{})
	assert.False(t, p2.typing.IsActive())
}

func TestVoiceResultSendsTranscript(t *testing.T) {
	p := newTestPanel()
	p.recording = true

	p2, cmd := p.Update(VoiceResultMsg{Transcript: "ayubowan"})
	assert.False(t, p2.recording)
	require.NotNil(t, cmd, "a finalized utterance should start a turn")
	assert.Empty(t, p2.input.Value(), "input should reset like a typed submission")
	assert.True(t, p2.Loading())
}

func TestVoiceResultGatedWhileStreaming(t *testing.T) {
	p := newTestPanel()
	p.input.SetValue("typed turn")
	_, first := p.submit()
	require.NotNil(t, first)

	p2, cmd := p.Update(VoiceResultMsg{Transcript: "ayubowan"})
	assert.Nil(t, cmd, "voice send goes through the same submit gate")
	assert.Equal(t, "ayubowan", p2.input.Value(), "gated transcript stays in the input")
}

func TestVoiceNoSpeechShowsStatus(t *testing.T) {
	p := newTestPanel()
	p.recording = true

	p2, _ := p.Update(VoiceResultMsg{Err: voice.ErrNoSpeech})
	assert.False(t, p2.recording)
	assert.Equal(t, "No speech detected", p2.statusMsg)
	assert.Empty(t, p2.input.Value())
}

func TestVoiceKeyIgnoredWithoutRecognizer(t *testing.T) {
	p := newTestPanel()

	_, cmd := p.handleKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, cmd, "voice shortcut should be inert without a recognizer")
	assert.False(t, p.recording)
}

func TestCloseReleasesChangeListener(t *testing.T) {
	p := newTestPanel()
	listener := p.waitForChange()

	released := make(chan tea.Msg, 1)
	go func() { released <- listener() }()

	p.Close()
	select {
	case msg := <-released:
		assert.Nil(t, msg, "a closed panel's listener should return no message")
	case <-time.After(time.Second):
		t.Fatal("change listener still blocked after Close")
	}

	p.Close() // second close is a no-op
}

func TestCopyLastReplyEmptyTranscript(t *testing.T) {
	p := newTestPanel()
	assert.Nil(t, p.copyLastReply(), "nothing to copy from an empty transcript")
}

func TestCopyCompleteSetsStatus(t *testing.T) {
	p := newTestPanel()

	p2, _ := p.Update(CopyCompleteMsg{})
	assert.Equal(t, "Copied last reply", p2.statusMsg)
}

func TestKeystrokesClearStatus(t *testing.T) {
	p := newTestPanel()
	p.statusMsg = "Copied last reply"

	p2, _ := p.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Empty(t, p2.statusMsg)
}
