package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	cursorStyle     = lipgloss.NewStyle().Bold(true)
	ignoredStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	conflictStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
