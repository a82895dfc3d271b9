// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
package gemini

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// =============================================================================
// CHAT SESSION
// =============================================================================

// Session is one reusable chat exchange with the Gemini API. It carries
// the system instruction it was opened with and the explicit turn history
// that each request is grounded on. Sessions are not safe for concurrent
// streams; the caller must finish one StreamMessage before starting the
// next.
type Session struct {
	client      *Client
	instruction string

	mu      sync.Mutex
	history []*genai.Content
}

// NewSession opens a chat session with the given system instruction,
// seeded with prior history. The session keeps its own history; successful
// exchanges are appended so consecutive turns reuse the same seed.
func (c *Client) NewSession(instruction string, history []Message) *Session {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.Text == "" {
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  msg.Role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}
	return &Session{
		client:      c,
		instruction: instruction,
		history:     contents,
	}
}

// Instruction returns the system instruction this session was opened with.
func (s *Session) Instruction() string {
	return s.instruction
}

// HistoryLen returns the number of turns the session currently holds.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// StreamMessage sends one user message and streams the response, calling
// the callback for each text chunk in delivery order. On graceful
// completion the user turn and the full model reply are appended to the
// session history. On failure the history is left untouched and the error
// is returned; partial chunks already delivered are the caller's problem
// to discard.
func (s *Session) StreamMessage(ctx context.Context, text string, callback StreamCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userTurn := &genai.Content{
		Role:  RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}
	contents := make([]*genai.Content, 0, len(s.history)+1)
	contents = append(contents, s.history...)
	contents = append(contents, userTurn)

	config := &genai.GenerateContentConfig{}
	if s.instruction != "" {
		config.SystemInstruction = genai.NewContentFromText(s.instruction, genai.RoleUser)
	}

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	var reply strings.Builder
	for resp, err := range s.client.api.Models.GenerateContentStream(ctx, s.client.config.ChatModel, contents, config) {
		if err != nil {
			return &ClientError{Type: ErrTypeConnection, Message: "chat stream failed", Cause: err}
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			reply.WriteString(part.Text)
			callback(StreamChunk{Text: part.Text})
		}
	}

	callback(StreamChunk{Done: true})

	s.history = append(s.history, userTurn)
	if reply.Len() > 0 {
		s.history = append(s.history, &genai.Content{
			Role:  RoleModel,
			Parts: []*genai.Part{{Text: reply.String()}},
		})
	}
	return nil
}

// StreamMessageChan sends one user message and returns a channel of
// chunks. The channel is closed when streaming completes or fails; errors
// are delivered as chunks with the Error field set.
func (s *Session) StreamMessageChan(ctx context.Context, text string) <-chan StreamChunk {
	ch := make(chan StreamChunk)

	go func() {
		defer close(ch)

		err := s.StreamMessage(ctx, text, func(chunk StreamChunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		})

		if err != nil {
			select {
			case ch <- StreamChunk{Error: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}
