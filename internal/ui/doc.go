// Package ui holds the terminal presentation used by the bg3mm commands.
//
// Subpackages:
//
//   - static: non-interactive output such as the instance table
//   - prompt: single-question interactive prompts (confirm, text, select)
//   - styles: shared lipgloss colors and styles
//
// Interactive prompts render to stderr so stdout stays usable in pipes,
// e.g. cd "$(bg3mm path)".
package ui
