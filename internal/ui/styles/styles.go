// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions so the static table and the
// prompts look the same.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	// Accent is the highlight color for selected/active items (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Warning is used for recoverable problems (orange)
	Warning color.Color = lipgloss.Color("214")

	// Muted is used for secondary text such as ids (gray)
	Muted color.Color = lipgloss.Color("240")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)
