package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/taskflow/internal/todo"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorBg        = lipgloss.Color("#1A1B26")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// Status
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	// Tasks
	doneTitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight).
			Align(lipgloss.Center)

	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Align(lipgloss.Center).
			Padding(0, 1)
)

var priorityStyles = map[todo.Priority]lipgloss.Style{
	todo.PriorityHigh:   lipgloss.NewStyle().Foreground(colorError),
	todo.PriorityMedium: lipgloss.NewStyle().Foreground(colorWarning),
	todo.PriorityLow:    lipgloss.NewStyle().Foreground(colorSuccess),
}

func priorityLabel(p todo.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return mutedStyle.Render(string(p))
	}
	return style.Render("● " + string(p))
}

func colorDot(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
