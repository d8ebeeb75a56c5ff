package report

import "github.com/charmbracelet/lipgloss"

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	Susceptible = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	Infected    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	Recovered   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	Quarantined = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
)
