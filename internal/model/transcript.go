// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
package model

import (
	"errors"
	"sync"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyLog is returned when a mutation targets the last entry of an
// empty transcript. This indicates a bug in the caller, not a runtime
// condition; callers should treat it as fatal.
var ErrEmptyLog = errors.New("transcript is empty")

// ErrInvalidTarget is returned when a content update targets a final
// message that is not a model placeholder. Only the streaming model entry
// may be updated in place.
var ErrInvalidTarget = errors.New("last message is not a model message")

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is an ordered, append-only sequence of messages. Insertion
// order is chronological order is display order; entries are never
// reordered or filtered in place. The only in-place mutations allowed are
// on the final entry: incremental content growth of a model placeholder
// during streaming, and wholesale replacement of the final entry.
//
// A transcript is owned by the panel that created it and discarded on
// panel teardown. The mutex exists because streaming mutations arrive from
// the gateway goroutine while renders read from the Bubble Tea loop.
type Transcript struct {
	mu       sync.RWMutex
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Append adds a message to the end of the transcript and returns its
// index. Append never fails.
func (t *Transcript) Append(msg Message) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	return len(t.messages) - 1
}

// ReplaceLast overwrites the message at the final index.
func (t *Transcript) ReplaceLast(msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return ErrEmptyLog
	}
	t.messages[len(t.messages)-1] = msg
	return nil
}

// UpdateLastContent overwrites only the content of the final message,
// preserving its role and image flag. The final message must be a model
// entry; the transcript only ever incrementally updates a model
// placeholder.
func (t *Transcript) UpdateLastContent(content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.messages) == 0 {
		return ErrEmptyLog
	}
	last := &t.messages[len(t.messages)-1]
	if last.Role != RoleModel {
		return ErrInvalidTarget
	}
	last.Content = content
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Snapshot returns a copy of the full ordered message sequence.
func (t *Transcript) Snapshot() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the final message and true, or a zero message and false if
// the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return t.Len() == 0
}
