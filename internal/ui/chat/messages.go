// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel for the TUI.
//
// This file defines the Bubble Tea message types used by the panel:
//   - Transcript: coalesced change notifications from the engine
//   - Streaming: turn completion
//   - Voice: transcription results from the external recognizer
//   - Clipboard: copy confirmations
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// TranscriptChangedMsg signals that the engine mutated the transcript and the
// viewport should re-render. Notifications are coalesced: many engine updates
// may collapse into one message.
type TranscriptChangedMsg struct{}

// StreamDoneMsg signals that a chat turn finished. Err carries only invariant
// violations; stream failures are already written into the transcript as the
// fallback reply.
type StreamDoneMsg struct {
	Err error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceStartMsg signals that voice capture has begun.
type VoiceStartMsg struct{}

// VoiceResultMsg delivers the recognizer's transcript, or the reason capture
// failed.
type VoiceResultMsg struct {
	Transcript string
	Err        error
}

// =============================================================================
// CLIPBOARD MESSAGES
// =============================================================================

// CopyCompleteMsg confirms a clipboard copy.
type CopyCompleteMsg struct {
	Err error
}
