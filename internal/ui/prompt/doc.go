// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr with the color profile detected for it, so
// command output on stdout can still be piped.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input
//   - [Select]: Single selection from a list
package prompt
