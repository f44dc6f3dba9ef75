// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9CF0") // Periwinkle
	// BuyColor marks buy verdicts.
	BuyColor = lipgloss.Color("#4ECDC4") // Teal
	// HoldColor marks hold verdicts.
	HoldColor = lipgloss.Color("#FFE66D") // Yellow
	// SkipColor marks skip verdicts.
	SkipColor = lipgloss.Color("#FF6B6B") // Red
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// BuyStyle formats buy verdicts.
	BuyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BuyColor)

	// HoldStyle formats hold verdicts.
	HoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(HoldColor)

	// SkipStyle formats skip verdicts.
	SkipStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SkipColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)
