// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives streamed model output into the chat transcript.
//
// The Engine is the presentation-independent core of a chat panel. It
// owns the transcript and a reusable gateway session keyed by system
// instruction, exposes the transcript snapshot and a loading flag, and
// provides two entry points: SendMessage for streamed chat and
// GenerateImage for one-shot image generation.
//
// The send protocol appends the user message and an empty model
// placeholder, opens or reuses a gateway session, folds each received
// chunk into the placeholder in delivery order, and on any stream failure
// replaces the accumulated content with a fixed user-facing fallback.
// The loading flag flips to false as the terminal step of every send.
package engine
