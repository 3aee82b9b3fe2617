package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// darkBG drives the few spots where adaptive colors are not enough,
// like the waiting-screen accent.
var darkBG = termenv.HasDarkBackground()

var (
	titleBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Foreground(lipgloss.Color("7")).
			Bold(true).
			Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	contentBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	statusInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	selectedRowStyle = lipgloss.NewStyle().Reverse(true)

	xColumnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	yColumnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	selectedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	barStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	overlayBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("3"))

	overlayTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	sortedColStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	selectedColStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	// SQL token styles.
	sqlKeywordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	sqlFunctionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	sqlStringStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	sqlNumberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	sqlCommentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	sqlOperatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sqlIdentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	lineNumberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// waitingAccent picks a readable duck color for the current terminal.
func waitingAccent() lipgloss.Style {
	if darkBG {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
}
