package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A8A8"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorMarkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	attentionMarkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#03D47C"))

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#03D47C")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	emptyTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#03D47C"))
)
