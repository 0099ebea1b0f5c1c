package window

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/pocket/internal/keys"
	"github.com/kmacinski/pocket/internal/ui"
)

// Help displays keybinding help
type Help struct {
	Base
}

// NewHelp creates a new help window
func NewHelp(styles ui.Styles) *Help {
	return &Help{
		Base: NewBase("help", styles),
	}
}

// Update handles input (modal keys handled by app)
func (h *Help) Update(msg tea.Msg) (Window, tea.Cmd) {
	return h, nil
}

// View renders the help content
func (h *Help) View(width, height int) string {
	h.hits.reset()

	contentWidth := width - 6   // padding and border
	contentHeight := height - 4 // padding and border

	if contentWidth < 1 || contentHeight < 1 {
		return ""
	}

	var lines []string

	lines = append(lines, h.styles.ModalTitle.Render("Keybindings"))

	seen := map[string]bool{}
	keyStyle := h.styles.Bold.Width(8)
	for _, b := range keys.HelpBindings() {
		help := b.Help()
		if seen[help.Key] {
			continue
		}
		seen[help.Key] = true
		desc := truncate(help.Desc, contentWidth-9)
		lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(help.Key), h.styles.ListItem.Render(desc)))
	}

	lines = append(lines, "")
	lines = append(lines, h.styles.Muted.Render("Press ? or Esc to close"))

	return h.styles.Modal.
		Width(contentWidth).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}
