// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (money green).
	PrimaryColor = lipgloss.Color("#10B981")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#34D399")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FBBF24")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F87171")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#60A5FA")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#6B7280")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)
