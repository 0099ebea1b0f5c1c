package window

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/ui"
)

// Header is the top bar with the browser brand
type Header struct {
	Base
	brand string
}

// NewHeader creates a new header bar
func NewHeader(styles ui.Styles, brand string) *Header {
	return &Header{
		Base:  NewBase("header", styles),
		brand: brand,
	}
}

// Update is a no-op; the header has no input
func (h *Header) Update(msg tea.Msg) (Window, tea.Cmd) {
	return h, nil
}

// View renders the brand right-aligned
func (h *Header) View(width, height int) string {
	h.hits.reset()
	if width < 1 || height < 1 {
		return ""
	}
	brand := h.styles.Brand.Render("◎ " + h.brand)
	line := lipgloss.PlaceHorizontal(width-1, lipgloss.Right, brand)
	if height == 1 {
		return line
	}
	return h.styles.Header.Width(width).Render(line)
}
