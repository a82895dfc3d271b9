// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives streamed model output into the chat transcript.
package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/model"
)

// FallbackResponse replaces whatever partial text accumulated when a chat
// stream fails. Partial output is discarded, not preserved.
const FallbackResponse = "Sorry, I couldn't process that. Please try again."

// =============================================================================
// GATEWAY INTERFACES
// =============================================================================

// Session is one reusable chat exchange with the model gateway.
type Session interface {
	// Instruction returns the system instruction the session was opened
	// with. The engine keys session reuse on it.
	Instruction() string

	// StreamMessage sends one user message and calls the callback for each
	// text chunk in delivery order, returning when the stream completes or
	// fails.
	StreamMessage(ctx context.Context, text string, callback gemini.StreamCallback) error
}

// Gateway opens chat sessions and generates images.
type Gateway interface {
	OpenSession(instruction string, history []gemini.Message) Session
	GenerateImage(ctx context.Context, prompt string) (*gemini.GeneratedImage, error)
}

// GeminiGateway adapts gemini.Client to the Gateway interface.
type GeminiGateway struct {
	Client *gemini.Client
}

func (g GeminiGateway) OpenSession(instruction string, history []gemini.Message) Session {
	return g.Client.NewSession(instruction, history)
}

func (g GeminiGateway) GenerateImage(ctx context.Context, prompt string) (*gemini.GeneratedImage, error) {
	return g.Client.GenerateImage(ctx, prompt)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns one transcript and at most one gateway session, and folds
// streamed model output into the transcript. An engine is created per chat
// panel and discarded with it; the transcript is never shared.
//
// Concurrency contract: at most one SendMessage may be in flight at a
// time. The engine does not queue or reject concurrent calls; the caller
// gates submission on Loading(), which flips to false as the terminal step
// of every send.
type Engine struct {
	gateway Gateway

	mu          sync.Mutex
	transcript  *model.Transcript
	session     Session
	loading     bool
	instruction string // instruction of the current session

	onChange  func()
	onLoading func(bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithOnChange sets a callback invoked after every observable transcript
// mutation, before the next mutation is applied. The presentation layer
// may coalesce rapid notifications as long as it renders the final state.
func WithOnChange(fn func()) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithOnLoading sets a callback invoked when the loading flag changes.
func WithOnLoading(fn func(bool)) Option {
	return func(e *Engine) { e.onLoading = fn }
}

// New creates an engine over the given gateway with an empty transcript.
func New(gateway Gateway, opts ...Option) *Engine {
	e := &Engine{
		gateway:    gateway,
		transcript: model.NewTranscript(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transcript returns a snapshot of the full ordered message sequence.
func (e *Engine) Transcript() []model.Message {
	return e.transcript.Snapshot()
}

// Loading reports whether a stream is in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Engine) notifyChange() {
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Engine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()
	if e.onLoading != nil {
		e.onLoading(v)
	}
}

// =============================================================================
// CHAT STREAMING
// =============================================================================

// SendMessage appends the user message and a model placeholder, streams
// the gateway response into the placeholder, and handles failure by
// replacing the accumulated content with FallbackResponse. It blocks until
// the stream reaches a terminal state; the loading flag flips to false as
// the very last step regardless of outcome.
//
// Stream failures are recovered into the transcript and never returned.
// A non-nil error means a transcript invariant was violated, which is a
// bug, and the caller should abort loudly.
func (e *Engine) SendMessage(ctx context.Context, text, instruction string) error {
	// Prior history excludes the turns appended below.
	prior := e.transcript.Snapshot()

	e.transcript.Append(model.NewUserMessage(text))
	e.notifyChange()
	e.transcript.Append(model.NewModelPlaceholder())
	e.notifyChange()

	e.setLoading(true)
	defer e.setLoading(false)

	session := e.sessionFor(instruction, prior)

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	var accumulated strings.Builder
	var invariantErr error

	streamErr := session.StreamMessage(ctx, text, func(chunk gemini.StreamChunk) {
		if invariantErr != nil || chunk.Text == "" {
			return
		}
		accumulated.WriteString(chunk.Text)
		if err := e.transcript.UpdateLastContent(accumulated.String()); err != nil {
			invariantErr = err
			return
		}
		e.notifyChange()
	})

	if invariantErr != nil {
		return invariantErr
	}

	if streamErr != nil {
		// Partial output is discarded wholesale, not preserved.
		if err := e.transcript.UpdateLastContent(FallbackResponse); err != nil {
			return err
		}
		e.notifyChange()
	}

	return nil
}

// sessionFor returns the reusable session when the instruction is
// unchanged, or opens a fresh one seeded with the prior history
// (everything before the newest user turn and placeholder). Recreating on
// instruction change keeps personas from contaminating each other when
// panels switch mid-conversation.
func (e *Engine) sessionFor(instruction string, prior []model.Message) Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil && e.instruction == instruction {
		return e.session
	}

	history := make([]gemini.Message, 0, len(prior))
	for _, msg := range prior {
		if msg.IsImage {
			continue
		}
		switch msg.Role {
		case model.RoleUser:
			history = append(history, gemini.NewUserMessage(msg.Content))
		case model.RoleModel:
			history = append(history, gemini.NewModelMessage(msg.Content))
		}
	}

	e.session = e.gateway.OpenSession(instruction, history)
	e.instruction = instruction
	return e.session
}

// =============================================================================
// IMAGE GENERATION
// =============================================================================

// GenerateImage requests a single image for the prompt. The image sibling
// has no transcript; failures surface as a displayable error and corrupt
// no log state.
func (e *Engine) GenerateImage(ctx context.Context, prompt string) (*gemini.GeneratedImage, error) {
	e.setLoading(true)
	defer e.setLoading(false)

	img, err := e.gateway.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if img == nil || img.Size() == 0 {
		return nil, gemini.ErrNoImages
	}
	return img, nil
}
