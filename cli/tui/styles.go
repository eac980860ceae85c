// Package tui provides the Bubble Tea browse view for the hashcloud CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only (browsing the file list, never mutating it)
//   - TUI shows the same records as non-TUI rendering
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	// TitleStyle for the list header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// HeaderStyle for column headers.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Bold(true)

	// RowStyle for unselected file rows.
	RowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// SelectedRowStyle for the row under the cursor.
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(highlightColor).
				Bold(true)

	// DigestStyle for abbreviated content digests.
	DigestStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// HelpStyle for the key hint footer.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
