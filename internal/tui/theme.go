package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"dev-journal/internal/journal"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   = ac("240", "243")
	colorAccent  = ac("27", "62")
	colorSuccess = ac("28", "42")
	colorWarn    = ac("130", "214")
	colorBorder  = ac("250", "243")
	colorFocus   = ac("232", "255")
	colorTabBg   = ac("254", "236")
)

// applyTheme points adaptive colors at the chosen theme instead of the detected background.
func applyTheme(t journal.Theme) {
	lipgloss.SetHasDarkBackground(t == journal.ThemeDark)
}

// detectEnvironment sets the color profile from the environment and reports whether
// the terminal background is dark. It must run before the program takes the terminal.
func detectEnvironment() bool {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
	return lipgloss.HasDarkBackground()
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleTab(active bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	if active {
		return st.Bold(true).Foreground(colorFocus).Background(colorTabBg).Underline(true)
	}
	return st.Foreground(colorMuted)
}

func styleFieldBox(focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if focused {
		return st.BorderForeground(colorFocus)
	}
	return st.BorderForeground(colorBorder)
}

func styleSaveStatus(saving bool) lipgloss.Style {
	if saving {
		return lipgloss.NewStyle().Foreground(colorWarn)
	}
	return lipgloss.NewStyle().Foreground(colorSuccess)
}

func styleModal() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorWarn).
		Padding(1, 3)
}
