// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
package gemini

// =============================================================================
// WIRE TYPES
// =============================================================================

// Message role strings as the Gemini API expects them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single conversation turn in wire form, used to seed a
// session with prior history.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// NewUserMessage creates a user turn.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// NewModelMessage creates a model turn.
func NewModelMessage(text string) Message {
	return Message{Role: RoleModel, Text: text}
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one fragment of a streamed chat response. Chunks are
// delivered in order; boundaries carry no relation to words or fence
// markers.
type StreamChunk struct {
	// Text is the fragment content. Empty on the terminal chunk.
	Text string

	// Done is true on the terminal chunk of a stream.
	Done bool

	// Error is set when the stream failed. Only delivered on channel-based
	// streams; callback streams report errors through the return value.
	Error error
}

// StreamCallback is called for each text chunk received during streaming.
// Callbacks run synchronously in delivery order.
type StreamCallback func(chunk StreamChunk)
