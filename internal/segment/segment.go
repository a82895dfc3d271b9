// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment classifies message text into plain-text and fenced-code
// runs for rendering.
package segment

import "strings"

// =============================================================================
// SEGMENT TYPE
// =============================================================================

// Kind identifies the variant of a segment.
type Kind int

const (
	KindPlainText Kind = iota
	KindCodeBlock
)

// Segment is a classified run of message text. Segments are derived view
// artifacts: recomputed from the full content on every render, never
// stored.
type Segment struct {
	Kind Kind

	// Text is the run content for KindPlainText segments.
	Text string

	// Language and Code are set for KindCodeBlock segments. Language is the
	// identifier token following the opening fence and may be empty; the
	// renderer decides the default label. Code is trimmed of surrounding
	// whitespace.
	Language string
	Code     string
}

// PlainText constructs a plain-text segment.
func PlainText(text string) Segment {
	return Segment{Kind: KindPlainText, Text: text}
}

// CodeBlock constructs a code-block segment.
func CodeBlock(language, code string) Segment {
	return Segment{Kind: KindCodeBlock, Language: language, Code: code}
}

// =============================================================================
// SPLITTER
// =============================================================================

const fence = "```"

// Split partitions text into plain-text and fenced-code segments in
// encounter order.
//
// A code block is a triple-backtick marker followed immediately (no space)
// by an optional language token, a newline, the block content, and a
// closing triple-backtick marker. A fence only becomes a code block once
// its closing marker is present: while streaming, an unterminated trailing
// fence stays inside the surrounding plain text until the closing marker
// arrives in the accumulated string. Split is a pure function of its input,
// so recomputing on every growing prefix needs no memory of earlier calls.
//
// Empty input produces no segments, and empty runs between fences are
// omitted rather than emitted as empty segments.
func Split(text string) []Segment {
	var segments []Segment

	// plain accumulates text that is not part of a completed code block,
	// including fence-lookalikes that never open or never close.
	var plain strings.Builder
	rest := text

	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			plain.WriteString(rest)
			break
		}

		afterMarker := rest[open+len(fence):]
		newline := strings.IndexByte(afterMarker, '\n')
		if newline < 0 {
			// No newline after the marker: the fence header is still
			// streaming in (or malformed). Everything stays plain.
			plain.WriteString(rest)
			break
		}

		language := afterMarker[:newline]
		if strings.ContainsAny(language, " \t\r") {
			// Not a fence header (the identifier token may not contain
			// whitespace). Consume up to and including the marker as plain
			// text and keep scanning.
			plain.WriteString(rest[:open+len(fence)])
			rest = afterMarker
			continue
		}

		body := afterMarker[newline+1:]
		closing := strings.Index(body, fence)
		if closing < 0 {
			// Opening fence with no closing marker yet: all-or-nothing, the
			// whole tail remains plain text until the close arrives.
			plain.WriteString(rest)
			break
		}

		plain.WriteString(rest[:open])
		if plain.Len() > 0 {
			segments = append(segments, PlainText(plain.String()))
			plain.Reset()
		}
		segments = append(segments, CodeBlock(language, strings.TrimSpace(body[:closing])))
		rest = body[closing+len(fence):]
	}

	if plain.Len() > 0 {
		segments = append(segments, PlainText(plain.String()))
	}
	return segments
}

// HasCode reports whether any segment is a code block. Used by renderers
// to pick bubble layout.
func HasCode(segments []Segment) bool {
	for _, s := range segments {
		if s.Kind == KindCodeBlock {
			return true
		}
	}
	return false
}
