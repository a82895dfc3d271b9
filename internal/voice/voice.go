// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice provides optional speech-to-text capture.
package voice

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnsupported means no transcriber is available on this system.
	ErrUnsupported = errors.New("voice capture is not available")

	// ErrNoSpeech means the transcriber ran but produced no transcript.
	ErrNoSpeech = errors.New("no speech was recognized")
)

// =============================================================================
// RECOGNIZER
// =============================================================================

// Recognizer captures speech and produces at most one finalized
// transcript per activation. Voice capture is an optional capability:
// callers must check Supported before offering the control and must never
// assume presence.
type Recognizer interface {
	// Supported reports whether capture can be attempted at all.
	Supported() bool

	// Capture records until the transcriber finishes and returns the
	// finalized transcript. The transcript is semantically equivalent to
	// typed input.
	Capture(ctx context.Context) (string, error)
}

// =============================================================================
// COMMAND RECOGNIZER
// =============================================================================

// CommandRecognizer shells out to a user-configured transcriber command
// (for example a whisper.cpp wrapper) that records from the microphone
// and prints the transcript to stdout.
type CommandRecognizer struct {
	command string
	args    []string
}

// NewCommandRecognizer creates a recognizer for the given command line.
// An empty command yields a permanently unsupported recognizer.
func NewCommandRecognizer(command string, args ...string) *CommandRecognizer {
	return &CommandRecognizer{command: command, args: args}
}

// Supported reports whether the transcriber command is configured and
// resolvable on PATH.
func (r *CommandRecognizer) Supported() bool {
	if r.command == "" {
		return false
	}
	_, err := exec.LookPath(r.command)
	return err == nil
}

// Capture runs the transcriber and returns its trimmed stdout as the
// finalized transcript.
func (r *CommandRecognizer) Capture(ctx context.Context) (string, error) {
	if !r.Supported() {
		return "", ErrUnsupported
	}

	out, err := exec.CommandContext(ctx, r.command, r.args...).Output()
	if err != nil {
		return "", fmt.Errorf("transcriber failed: %w", err)
	}

	transcript := strings.TrimSpace(string(out))
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}
