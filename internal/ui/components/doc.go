// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the Sinhala GPT TUI.

# Components

  - Header - title bar with the feature tab strip
  - MessageBubble / MessageList - transcript rendering; model replies are
    split into prose and fenced-code segments, prose goes through markdown
    and code gets a highlighted block with a language badge
  - CodeBlock - chroma-highlighted code with line numbers; blocks with no
    language identifier are badged "code"
  - TypingIndicator - spinner shown while a reply or image is generating

# Rendering Pipeline

Model messages flow through the segment package before display:

	for _, seg := range segment.Split(msg.Content) {
		switch seg.Kind {
		case segment.KindCodeBlock:
			// highlighted block
		default:
			// markdown prose
		}
	}

All styling comes from the styles package so colors adapt to light and
dark terminals automatically.
*/
package components
