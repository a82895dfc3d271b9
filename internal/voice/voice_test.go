// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice provides optional speech-to-text capture.
package voice

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestCommandRecognizer_UnsupportedWhenUnconfigured(t *testing.T) {
	r := NewCommandRecognizer("")
	if r.Supported() {
		t.Error("empty command should be unsupported")
	}

	_, err := r.Capture(context.Background())
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Capture = %v, want ErrUnsupported", err)
	}
}

func TestCommandRecognizer_UnsupportedWhenMissingFromPath(t *testing.T) {
	r := NewCommandRecognizer("definitely-not-a-real-transcriber-binary")
	if r.Supported() {
		t.Error("missing binary should be unsupported")
	}
}

func TestCommandRecognizer_CaptureTrimsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses a unix shell command as a stand-in transcriber")
	}

	r := NewCommandRecognizer("echo", "  hello from voice  ")
	if !r.Supported() {
		t.Skip("echo not on PATH")
	}

	got, err := r.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if got != "hello from voice" {
		t.Errorf("Capture = %q, want trimmed transcript", got)
	}
}

func TestCommandRecognizer_EmptyTranscriptIsError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses a unix shell command as a stand-in transcriber")
	}

	r := NewCommandRecognizer("true")
	if !r.Supported() {
		t.Skip("true not on PATH")
	}

	_, err := r.Capture(context.Background())
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Capture = %v, want ErrNoSpeech", err)
	}
}
