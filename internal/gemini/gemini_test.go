// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// ERROR TAXONOMY TESTS
// =============================================================================

func TestClientError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ClientError
		want string
	}{
		{
			"message only",
			&ClientError{Type: ErrTypeNoImages, Message: "no image was generated"},
			"no image was generated",
		},
		{
			"message with cause",
			&ClientError{Type: ErrTypeConnection, Message: "chat stream failed", Cause: errors.New("EOF")},
			"chat stream failed: EOF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClientError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ClientError{Type: ErrTypeConnection, Message: "chat stream failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsNoImages(t *testing.T) {
	if !IsNoImages(ErrNoImages) {
		t.Error("IsNoImages(ErrNoImages) = false")
	}
	wrapped := &ClientError{Type: ErrTypeNoImages, Message: "empty response"}
	if !IsNoImages(wrapped) {
		t.Error("IsNoImages should match any ErrTypeNoImages error")
	}
	if IsNoImages(errors.New("other")) {
		t.Error("IsNoImages matched an unrelated error")
	}
}

// =============================================================================
// CLIENT CONFIG TESTS
// =============================================================================

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), &ClientConfig{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewClient without key = %v, want ErrNoAPIKey", err)
	}

	_, err = NewClient(context.Background(), nil)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewClient(nil config) = %v, want ErrNoAPIKey", err)
	}
}

func TestDefaultClientConfig(t *testing.T) {
	config := DefaultClientConfig()
	if config.ChatModel != DefaultChatModel {
		t.Errorf("ChatModel = %q, want %q", config.ChatModel, DefaultChatModel)
	}
	if config.ImageModel != DefaultImageModel {
		t.Errorf("ImageModel = %q, want %q", config.ImageModel, DefaultImageModel)
	}
}

// =============================================================================
// SESSION TESTS (no network)
// =============================================================================

func TestNewSession_SeedsHistory(t *testing.T) {
	c := &Client{config: DefaultClientConfig()}

	history := []Message{
		NewUserMessage("hi"),
		NewModelMessage("hello"),
		{Role: RoleUser, Text: ""}, // empty turns are dropped from the seed
	}
	s := c.NewSession("be helpful", history)

	if s.Instruction() != "be helpful" {
		t.Errorf("Instruction() = %q", s.Instruction())
	}
	if got := s.HistoryLen(); got != 2 {
		t.Errorf("HistoryLen() = %d, want 2", got)
	}
}

// =============================================================================
// IMAGE PAYLOAD TESTS
// =============================================================================

func TestGeneratedImage_DataReference(t *testing.T) {
	img := &GeneratedImage{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}

	ref := img.DataReference()
	if !strings.HasPrefix(ref, "data:image/jpeg;base64,") {
		t.Errorf("DataReference() = %q, want data URL prefix", ref)
	}
	if len(ref) == len("data:image/jpeg;base64,") {
		t.Error("DataReference() carries no payload")
	}
	if img.Size() != 3 {
		t.Errorf("Size() = %d, want 3", img.Size())
	}
}
