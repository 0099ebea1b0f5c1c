package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles holds all the lipgloss styles for the application
type Styles struct {
	// Frame
	Frame  lipgloss.Style
	Header lipgloss.Style
	Brand  lipgloss.Style

	// Home screen
	SearchBar        lipgloss.Style
	SearchBarFocused lipgloss.Style
	Card             lipgloss.Style
	CardSymbol       lipgloss.Style
	CardCode         lipgloss.Style
	CardValue        lipgloss.Style
	SectionTitle     lipgloss.Style
	AppIcon          lipgloss.Style
	AppLabel         lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemMuted    lipgloss.Style
	Badge            lipgloss.Style
	ActiveMarker     lipgloss.Style
	Action           lipgloss.Style
	ActionDanger     lipgloss.Style

	// Navigation bar
	NavItem         lipgloss.Style
	NavItemSelected lipgloss.Style

	// Overlays
	Overlay       lipgloss.Style
	OverlayTitle  lipgloss.Style
	MenuItem      lipgloss.Style
	MenuItemFocus lipgloss.Style
	MenuDisabled  lipgloss.Style
	Dot           lipgloss.Style
	DotActive     lipgloss.Style

	// Status line
	StatusBar lipgloss.Style

	// Modal
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style

	colors Colors
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors) Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderUnfocused),
		Header: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(c.BorderUnfocused),
		Brand: lipgloss.NewStyle().
			Foreground(c.Brand).
			Bold(true),

		SearchBar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderUnfocused).
			Padding(0, 1),
		SearchBarFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderUnfocused).
			Align(lipgloss.Center),
		CardSymbol: lipgloss.NewStyle().
			Foreground(c.Accent).
			Bold(true),
		CardCode: lipgloss.NewStyle().
			Foreground(c.Text).
			Bold(true),
		CardValue: lipgloss.NewStyle().
			Foreground(c.Muted),
		SectionTitle: lipgloss.NewStyle().
			Foreground(c.Text).
			Bold(true),
		AppIcon: lipgloss.NewStyle().
			Foreground(c.Text).
			Background(c.Surface).
			Bold(true).
			Padding(0, 1),
		AppLabel: lipgloss.NewStyle().
			Foreground(c.Muted),

		ListItem: lipgloss.NewStyle().
			Foreground(c.Text),
		ListItemSelected: lipgloss.NewStyle().
			Foreground(c.Accent).
			Bold(true),
		ListItemMuted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
		ActiveMarker: lipgloss.NewStyle().
			Foreground(c.Accent),
		Action: lipgloss.NewStyle().
			Foreground(c.Muted),
		ActionDanger: lipgloss.NewStyle().
			Foreground(c.Danger),

		NavItem: lipgloss.NewStyle().
			Foreground(c.Muted),
		NavItemSelected: lipgloss.NewStyle().
			Foreground(c.AccentAlt).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused),
		OverlayTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Text).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().
			Foreground(c.Text).
			Align(lipgloss.Center),
		MenuItemFocus: lipgloss.NewStyle().
			Foreground(c.Accent).
			Bold(true).
			Align(lipgloss.Center),
		MenuDisabled: lipgloss.NewStyle().
			Foreground(c.Muted).
			Faint(true).
			Align(lipgloss.Center),
		Dot: lipgloss.NewStyle().
			Foreground(c.Muted),
		DotActive: lipgloss.NewStyle().
			Foreground(c.Accent),

		StatusBar: lipgloss.NewStyle().
			Foreground(c.Muted),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.BorderFocused).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Accent).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),

		colors: c,
	}
}

// Colors returns the palette the styles were built from
func (s Styles) Colors() Colors {
	return s.colors
}

// Gradient renders text with a background blended between two hex colors,
// one step per rune.
func Gradient(text, from, to string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return text
	}
	var out []string
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		bg := lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
		out = append(out, lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(string(r)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// DefaultStyles returns styles with the default color palette
var DefaultStyles = NewStyles(DefaultColors)
