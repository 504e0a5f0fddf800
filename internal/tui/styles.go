package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#E08A00")).
			Padding(0, 1)

	// Section title style
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E08A00"))

	// Table header styles
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("#FFFFFF"))

	// Status color styles
	statusOnlineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00FF00"))

	statusOfflineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF0000"))

	// Label style for footer keys
	labelStyle = lipgloss.NewStyle().
			Bold(true)

	// Prompt style for the command line
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ADD8")).
			Bold(true)

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// getStatusStyle returns the style for a player's online flag
func getStatusStyle(online bool) lipgloss.Style {
	if online {
		return statusOnlineStyle
	}
	return statusOfflineStyle
}

// getStatusIndicator returns the status indicator symbol
func getStatusIndicator(online bool) string {
	if online {
		return "●"
	}
	return "○"
}
