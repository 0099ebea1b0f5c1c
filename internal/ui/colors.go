package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/config"
)

// Colors defines the color palette for the application
type Colors struct {
	Accent          lipgloss.Color
	AccentAlt       lipgloss.Color
	Brand           lipgloss.Color
	Text            lipgloss.Color
	Muted           lipgloss.Color
	Surface         lipgloss.Color
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
	Danger          lipgloss.Color
}

// ColorsFromConfig converts configured hex strings into a palette
func ColorsFromConfig(c config.ColorConfig) Colors {
	return Colors{
		Accent:          lipgloss.Color(c.Accent),
		AccentAlt:       lipgloss.Color(c.AccentAlt),
		Brand:           lipgloss.Color(c.Brand),
		Text:            lipgloss.Color(c.Text),
		Muted:           lipgloss.Color(c.Muted),
		Surface:         lipgloss.Color(c.Surface),
		BorderFocused:   lipgloss.Color(c.BorderFocused),
		BorderUnfocused: lipgloss.Color(c.BorderUnfocused),
		Danger:          lipgloss.Color(c.Danger),
	}
}

// DefaultColors returns the default color palette
var DefaultColors = ColorsFromConfig(config.Default().Colors)
