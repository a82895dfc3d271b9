// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Gemini client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNoAPIKey
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeNoImages
)

// Sentinel errors for easy checking.
var (
	ErrNoAPIKey = &ClientError{Type: ErrTypeNoAPIKey, Message: "Gemini API key is not configured"}
	ErrNoImages = &ClientError{Type: ErrTypeNoImages, Message: "no image was generated"}
)

// IsNoImages checks if an error means the gateway returned zero images.
func IsNoImages(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNoImages
	}
	return errors.Is(err, ErrNoImages)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Default model identifiers, matching the hosted API's current offerings.
const (
	DefaultChatModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-3.0-generate-002"
)

// ClientConfig holds the settings for the Gemini client.
type ClientConfig struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// ChatModel is the model used for streaming chat.
	ChatModel string

	// ImageModel is the model used for image generation.
	ImageModel string
}

// DefaultClientConfig returns a config with default model names.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ChatModel:  DefaultChatModel,
		ImageModel: DefaultImageModel,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client wraps the genai SDK client for chat streaming and image
// generation.
type Client struct {
	api    *genai.Client
	config *ClientConfig
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.ImageModel == "" {
		config.ImageModel = DefaultImageModel
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: config.APIKey})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create Gemini client", Cause: err}
	}

	return &Client{api: api, config: config}, nil
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}
