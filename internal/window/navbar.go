package window

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/ui"
)

// Nav is the bottom navigation selection
type Nav int

const (
	NavBack Nav = iota
	NavForward
	NavHome
	NavTabs
	NavMenu
)

// NavItems lists the bar buttons left to right
var NavItems = []Nav{NavBack, NavForward, NavHome, NavTabs, NavMenu}

func (n Nav) String() string {
	switch n {
	case NavBack:
		return "back"
	case NavForward:
		return "forward"
	case NavHome:
		return "home"
	case NavTabs:
		return "tabs"
	case NavMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Glyph returns the button symbol
func (n Nav) Glyph() string {
	switch n {
	case NavBack:
		return "←"
	case NavForward:
		return "→"
	case NavHome:
		return "⌂"
	case NavTabs:
		return "❐"
	case NavMenu:
		return "≡"
	default:
		return "?"
	}
}

// NavBar renders the five bottom buttons
type NavBar struct {
	Base
	selected Nav
	tabCount int
}

// NewNavBar creates a new navigation bar
func NewNavBar(styles ui.Styles) *NavBar {
	return &NavBar{
		Base:     NewBase("nav", styles),
		selected: NavHome,
	}
}

// SetSelected highlights nav
func (n *NavBar) SetSelected(nav Nav) {
	n.selected = nav
}

// SetTabCount sets the number shown on the tabs button
func (n *NavBar) SetTabCount(count int) {
	n.tabCount = count
}

// Update handles input (clicks handled by app)
func (n *NavBar) Update(msg tea.Msg) (Window, tea.Cmd) {
	return n, nil
}

// View renders the bar as equal-width buttons
func (n *NavBar) View(width, height int) string {
	n.hits.reset()
	if width < len(NavItems) || height < 1 {
		return ""
	}

	cell := width / len(NavItems)
	var cells []string
	x := 0
	for i, nav := range NavItems {
		w := cell
		if i == len(NavItems)-1 {
			w = width - x
		}

		label := nav.Glyph()
		if nav == NavTabs && n.tabCount > 0 {
			label += " " + strconv.Itoa(n.tabCount)
		}
		style := n.styles.NavItem
		if nav == n.selected {
			style = n.styles.NavItemSelected
		}
		cells = append(cells, style.Width(w).Align(lipgloss.Center).Render(label))

		for y := 0; y < height; y++ {
			n.hits.add(y, x, x+w, Target{Kind: TargetNav, Index: int(nav)})
		}
		x += w
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	if height > 1 {
		bar = strings.Repeat("\n", (height-1)/2) + bar
	}
	return bar
}
