package dashboard

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary = "#00D9FF"
	colorAccent  = "#BD93F9"
	colorText    = "#F8F8F2"
	colorMuted   = "#6272A4"
	colorBorder  = "#3C3C3C"
	colorError   = "#FF5555"
	colorWarning = "#FFB86C"
	colorSuccess = "#50FA7B"
	colorHelp    = "#626262"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			PaddingLeft(1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	chartTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary))

	barLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorText))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorHelp))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true)
)
