// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat panel for the Sinhala GPT TUI.

The panel is a Bubble Tea model wrapping one conversation engine. Each
feature (general chat, coding, education) constructs its own Panel with its
own system instruction, so switching features starts a clean transcript.

# Streaming

Sending a message runs the engine turn in a tea.Cmd goroutine. The engine
mutates the transcript as chunks arrive and signals each mutation through a
1-buffered change channel; the panel keeps exactly one listener pending on
that channel and re-renders the viewport per notification. Rapid chunk
bursts therefore collapse into single repaints instead of flooding the
update loop.

Stream failures never surface as errors here: the engine has already
replaced the partial reply with its fallback text by the time StreamDoneMsg
arrives.

# Input

Enter submits (gated while a turn is streaming), Ctrl+R captures voice
input when an external recognizer is configured, and Ctrl+Y copies the
newest model reply to the clipboard.
*/
package chat
