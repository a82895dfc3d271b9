// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the Sinhala GPT TUI.

This package defines the color palette and themed lipgloss styles used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Indigo - Primary accent, brand color, feature tabs
  - Teal - Secondary accent, user highlights, shortcut keys
  - Emerald - Success states (saved files)
  - Amber - Warnings and the voice recording indicator
  - Rose - Errors and failed generations

## Semantic Colors

Message bubbles use semantic color tokens:

	UserBubbleBg  - Background for user messages
	UserBubbleFg  - Text color for user messages
	ModelBubbleBg - Background for model messages
	ModelBubbleFg - Text color for model messages

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}

# Usage Example

	import "github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"

	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)
*/
package styles
