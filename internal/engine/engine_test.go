// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives streamed model output into the chat transcript.
package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/model"
)

// =============================================================================
// FAKE GATEWAY
// =============================================================================

// fakeSession replays scripted chunks, or fails after delivering them.
type fakeSession struct {
	instruction string
	seed        []gemini.Message
	chunks      []string
	failAfter   bool
	calls       int
}

func (s *fakeSession) Instruction() string { return s.instruction }

func (s *fakeSession) StreamMessage(_ context.Context, _ string, callback gemini.StreamCallback) error {
	s.calls++
	for _, c := range s.chunks {
		callback(gemini.StreamChunk{Text: c})
	}
	if s.failAfter {
		return &gemini.ClientError{Type: gemini.ErrTypeConnection, Message: "stream broke"}
	}
	callback(gemini.StreamChunk{Done: true})
	return nil
}

type fakeGateway struct {
	chunks    []string
	failAfter bool

	images   []*gemini.GeneratedImage
	imageErr error

	sessions []*fakeSession
}

func (g *fakeGateway) OpenSession(instruction string, history []gemini.Message) Session {
	s := &fakeSession{
		instruction: instruction,
		seed:        history,
		chunks:      g.chunks,
		failAfter:   g.failAfter,
	}
	g.sessions = append(g.sessions, s)
	return s
}

func (g *fakeGateway) GenerateImage(_ context.Context, _ string) (*gemini.GeneratedImage, error) {
	if g.imageErr != nil {
		return nil, g.imageErr
	}
	if len(g.images) == 0 {
		return nil, gemini.ErrNoImages
	}
	return g.images[0], nil
}

// =============================================================================
// STREAMING TESTS
// =============================================================================

func TestSendMessage_HappyPath(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"He", "llo"}}
	e := New(gw)

	err := e.SendMessage(context.Background(), "hi", "be general")
	require.NoError(t, err)

	log := e.Transcript()
	require.Len(t, log, 2)
	assert.Equal(t, model.RoleUser, log[0].Role)
	assert.Equal(t, "hi", log[0].Content)
	assert.Equal(t, model.RoleModel, log[1].Role)
	assert.Equal(t, "Hello", log[1].Content)
	assert.False(t, e.Loading(), "loading must be false after stream end")
}

func TestSendMessage_PlaceholderVisibleBeforeChunks(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"x"}}

	var sawPlaceholder bool
	var e *Engine
	e = New(gw, WithOnChange(func() {
		log := e.Transcript()
		if len(log) == 2 && log[1].Role == model.RoleModel && log[1].Content == "" {
			sawPlaceholder = true
		}
	}))

	require.NoError(t, e.SendMessage(context.Background(), "hi", "p"))
	assert.True(t, sawPlaceholder, "the empty model placeholder must be observable before streaming")
}

func TestSendMessage_EmptyResponseIsValid(t *testing.T) {
	gw := &fakeGateway{chunks: nil}
	e := New(gw)

	require.NoError(t, e.SendMessage(context.Background(), "hi", "p"))

	log := e.Transcript()
	require.Len(t, log, 2)
	assert.Equal(t, "", log[1].Content, "an all-empty response stands as an empty bubble")
}

func TestSendMessage_FailureReplacesPartial(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"Par"}, failAfter: true}
	e := New(gw)

	err := e.SendMessage(context.Background(), "hi", "p")
	require.NoError(t, err, "stream failures are recovered, never returned")

	log := e.Transcript()
	require.Len(t, log, 2)
	assert.Equal(t, FallbackResponse, log[1].Content,
		"partial output must be discarded, not preserved")
	assert.False(t, e.Loading(), "loading must be false after failure too")
}

func TestSendMessage_ChunksFoldInOrder(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"a", "b", "c", "d"}}

	var states []string
	var e *Engine
	e = New(gw, WithOnChange(func() {
		log := e.Transcript()
		if len(log) == 2 && log[1].Role == model.RoleModel {
			states = append(states, log[1].Content)
		}
	}))

	require.NoError(t, e.SendMessage(context.Background(), "hi", "p"))

	// Content grows monotonically by append; never shrinks, never reorders.
	prev := ""
	for _, s := range states {
		assert.True(t, len(s) >= len(prev), "content shrank from %q to %q", prev, s)
		assert.True(t, s[:len(prev)] == prev, "content reordered: %q then %q", prev, s)
		prev = s
	}
	assert.Equal(t, "abcd", prev)
}

// =============================================================================
// SESSION CONTINUITY TESTS
// =============================================================================

func TestSendMessage_SameInstructionReusesSession(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"ok"}}
	e := New(gw)

	require.NoError(t, e.SendMessage(context.Background(), "one", "persona-a"))
	require.NoError(t, e.SendMessage(context.Background(), "two", "persona-a"))

	require.Len(t, gw.sessions, 1, "consecutive same-instruction sends must reuse the session")
	assert.Equal(t, 2, gw.sessions[0].calls)
}

func TestSendMessage_InstructionChangeOpensFreshSession(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"ok"}}
	e := New(gw)

	require.NoError(t, e.SendMessage(context.Background(), "one", "persona-a"))
	require.NoError(t, e.SendMessage(context.Background(), "two", "persona-b"))

	require.Len(t, gw.sessions, 2, "an instruction change must open a fresh session")

	// The fresh session is seeded with the full prior log, excluding the
	// newest user turn and placeholder.
	seed := gw.sessions[1].seed
	require.Len(t, seed, 2)
	assert.Equal(t, gemini.RoleUser, seed[0].Role)
	assert.Equal(t, "one", seed[0].Text)
	assert.Equal(t, gemini.RoleModel, seed[1].Role)
	assert.Equal(t, "ok", seed[1].Text)
}

func TestSendMessage_FirstSessionSeededEmpty(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"ok"}}
	e := New(gw)

	require.NoError(t, e.SendMessage(context.Background(), "hello", "p"))
	require.Len(t, gw.sessions, 1)
	assert.Empty(t, gw.sessions[0].seed)
}

// =============================================================================
// LOADING SIGNAL TESTS
// =============================================================================

func TestLoadingSignalTerminalOrdering(t *testing.T) {
	gw := &fakeGateway{chunks: []string{"z"}}

	var signals []bool
	e := New(gw, WithOnLoading(func(v bool) { signals = append(signals, v) }))

	require.NoError(t, e.SendMessage(context.Background(), "hi", "p"))

	require.Len(t, signals, 2)
	assert.True(t, signals[0])
	assert.False(t, signals[1], "loading false is the terminal step")
}

// =============================================================================
// IMAGE GENERATION TESTS
// =============================================================================

func TestGenerateImage_Success(t *testing.T) {
	gw := &fakeGateway{images: []*gemini.GeneratedImage{
		{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}},
	}}
	e := New(gw)

	img, err := e.GenerateImage(context.Background(), "a cat")
	require.NoError(t, err)
	assert.NotEmpty(t, img.DataReference())
	assert.False(t, e.Loading())
}

func TestGenerateImage_ZeroImagesIsHardFailure(t *testing.T) {
	gw := &fakeGateway{}
	e := New(gw)

	_, err := e.GenerateImage(context.Background(), "a cat")
	assert.True(t, gemini.IsNoImages(err), "zero images must surface as a generation failure, got %v", err)
}

func TestGenerateImage_DoesNotTouchTranscript(t *testing.T) {
	gw := &fakeGateway{imageErr: errors.New("refused")}
	e := New(gw)

	_, err := e.GenerateImage(context.Background(), "something")
	require.Error(t, err)
	assert.Empty(t, e.Transcript(), "image failures corrupt no log state")
}
