// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
//
// The package wraps google.golang.org/genai behind two narrow surfaces:
//
//   - Session: a reusable chat exchange carrying a system instruction and
//     explicit turn history, streamed via StreamMessage (callback) or
//     StreamMessageChan (channel)
//   - Client.GenerateImage: one-shot Imagen generation returning an inline
//     JPEG payload
//
// Errors are reported as *ClientError with an ErrorType for dispatch,
// plus sentinels (ErrNoAPIKey, ErrNoImages) for errors.Is checks. Raw SDK
// and transport errors never escape this package unwrapped.
package gemini
