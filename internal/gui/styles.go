package gui

import "github.com/charmbracelet/lipgloss"

var (
	brandPrimary = lipgloss.Color("#4CAF50")
	brandDanger  = lipgloss.Color("#F44336")
	brandWarning = lipgloss.Color("#F59E0B")
	brandInfo    = lipgloss.Color("#06B6D4")
	textMuted    = lipgloss.Color("#6B7280")
	textBright   = lipgloss.Color("#F9FAFB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(textMuted)

	successStyle = lipgloss.NewStyle().Foreground(brandPrimary)
	errorStyle   = lipgloss.NewStyle().Foreground(brandDanger).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(brandWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(brandInfo)
	dimStyle     = lipgloss.NewStyle().Foreground(textMuted)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 3).
			MarginRight(2).
			Foreground(textMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(textMuted)

	installFocusedStyle = buttonStyle.
				Foreground(textBright).
				Background(brandPrimary).
				BorderForeground(brandPrimary)

	exitFocusedStyle = buttonStyle.
				Foreground(textBright).
				Background(brandDanger).
				BorderForeground(brandDanger)
)
