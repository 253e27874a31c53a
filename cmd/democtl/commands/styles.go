package commands

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A1A1AA"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52525B"))
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717A")).Italic(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)
