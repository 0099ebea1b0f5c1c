package window

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/pocket/internal/ui"
)

// Window defines the interface for all window types
type Window interface {
	// Update handles input when focused
	Update(msg tea.Msg) (Window, tea.Cmd)

	// View renders the window content
	View(width, height int) string

	// Focus state
	Focused() bool
	SetFocus(bool)

	// Identity
	Name() string

	// Styling
	SetStyles(ui.Styles)

	// Mouse targets from the last render, in window-local cells
	TargetAt(x, y int) Target
}
