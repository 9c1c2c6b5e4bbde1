package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color scheme for the terminal demos.
type Theme struct {
	User      lipgloss.Color
	Assistant lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Hint      lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	User:      lipgloss.Color("#D0D0D0"), // light gray
	Assistant: lipgloss.Color("#5FAFD7"), // light blue
	Accent:    lipgloss.Color("#AF87FF"), // violet
	Success:   lipgloss.Color("#00D787"), // green
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User)
}

func (t Theme) assistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Assistant)
}

func (t Theme) cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Assistant).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)
}

func (t Theme) tabStyle(active bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return s.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(t.Accent)
	}
	return s.Foreground(t.Hint)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}
