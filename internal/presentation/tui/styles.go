package tui

import "github.com/charmbracelet/lipgloss"

// Palette, dark-terminal friendly.
var (
	violet = lipgloss.Color("99")
	pink   = lipgloss.Color("212")
	green  = lipgloss.Color("76")
	dim    = lipgloss.Color("243")
)

var (
	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(violet).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(pink).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(dim)
	doneStyle   = lipgloss.NewStyle().Foreground(green)
	accentStyle = lipgloss.NewStyle().Foreground(violet)
)

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Done renders a completion message.
func Done(s string) string { return doneStyle.Render("✓") + " " + s }

// Info renders an informational message.
func Info(s string) string { return accentStyle.Render("●") + " " + s }
