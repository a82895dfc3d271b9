// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Transcript: ordered, append-only conversation log with in-place
//     mutation of the final entry during streaming
//   - Message: single entry with role, content, and image flag
//   - Role: message role enumeration (user, model)
//
// # Usage
//
// Create a transcript and fold a streamed response into it:
//
//	log := model.NewTranscript()
//	log.Append(model.NewUserMessage("Hello!"))
//	log.Append(model.NewModelPlaceholder())
//	log.UpdateLastContent("Hi")
//	log.UpdateLastContent("Hi there")
//
// Mutations of an empty transcript return ErrEmptyLog; content updates
// whose target is not a model entry return ErrInvalidTarget. Both indicate
// caller bugs and should abort the operation.
package model
