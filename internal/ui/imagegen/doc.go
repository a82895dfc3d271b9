// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package imagegen provides the image generation panel for the Sinhala GPT TUI.

The panel drives single-image generation through the conversation engine:
one JPEG at a 1:1 aspect ratio per request. Terminals cannot display the
image inline, so the panel shows the prompt, format, and byte size, and
offers Ctrl+S to save the JPEG into the configured download directory.

A generation that produces no image is a hard failure and is rendered as an
error box with a rephrasing hint.
*/
package imagegen
