package picker

import "github.com/charmbracelet/lipgloss"

// Palette shared with the rest of the dt terminal output.
var (
	salmonPink  = lipgloss.Color("#FFB3BA")
	coralPink   = lipgloss.Color("#FFCCCB")
	mintGreen   = lipgloss.Color("#A8E6CF")
	mutedGray   = lipgloss.Color("#6B7280")
	brightWhite = lipgloss.Color("#F9FAFB")
	deepBlue    = lipgloss.Color("#1E3A8A")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	filterStyle = lipgloss.NewStyle().
			Foreground(coralPink)

	cursorRowStyle = lipgloss.NewStyle().
			Background(deepBlue).
			Foreground(brightWhite)

	markStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	previewTitleStyle = lipgloss.NewStyle().
				Foreground(mintGreen).
				Bold(true)

	previewPathStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				Italic(true)
)
