package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Per-status styles for queue items.
var (
	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ProcessingStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	BatchBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	DriveLabelStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	SectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite)
)
