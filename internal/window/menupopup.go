package window

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/keys"
	"github.com/kmacinski/pocket/internal/menu"
	"github.com/kmacinski/pocket/internal/ui"
)

const menuColumns = 3

// MenuPopup shows one page of the settings grid with page dots below
type MenuPopup struct {
	Base
	page   int
	cursor int
}

// NewMenuPopup creates a new menu popup window
func NewMenuPopup(styles ui.Styles) *MenuPopup {
	return &MenuPopup{
		Base: NewBase("menu", styles),
		page: menu.FirstPage,
	}
}

// SetPage shows page n. The cursor returns to the first item when the
// page changes.
func (m *MenuPopup) SetPage(n int) {
	if n == m.page {
		return
	}
	m.page = n
	m.cursor = 0
}

// Page returns the page being shown
func (m *MenuPopup) Page() int {
	return m.page
}

// Cursor returns the highlighted item index on the current page
func (m *MenuPopup) Cursor() int {
	return m.cursor
}

// SetCursor highlights item i when it exists on the current page
func (m *MenuPopup) SetCursor(i int) {
	if i >= 0 && i < len(menu.Items(m.page)) {
		m.cursor = i
	}
}

// Update moves the cursor by whole rows. Left/right belong to paging and
// are handled by app.
func (m *MenuPopup) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	n := len(menu.Items(m.page))
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if m.cursor+menuColumns < n {
				m.cursor += menuColumns
			} else if m.cursor < n-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if m.cursor-menuColumns >= 0 {
				m.cursor -= menuColumns
			} else if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// View renders the grid and the dots
func (m *MenuPopup) View(width, height int) string {
	m.hits.reset()

	contentWidth := width - 2
	contentHeight := height - 2
	if contentWidth < menuColumns || contentHeight < 2 {
		return ""
	}

	items := menu.Items(m.page)
	cell := contentWidth / menuColumns

	var lines []string
	for start := 0; start < len(items); start += menuColumns {
		end := min(start+menuColumns, len(items))
		var icons, labels []string
		for i := start; i < end; i++ {
			item := items[i]
			style := m.styles.MenuItem
			switch {
			case item.Disabled:
				style = m.styles.MenuDisabled
			case i == m.cursor && m.focused:
				style = m.styles.MenuItemFocus
			}
			icons = append(icons, style.Width(cell).Render(item.Icon))
			labels = append(labels, style.Width(cell).Render(truncate(item.Label, cell-1)))

			x0 := 1 + (i-start)*cell
			for r := 0; r < 2; r++ {
				m.hits.add(1+len(lines)+r, x0, x0+cell, Target{Kind: TargetMenuItem, Index: i})
			}
		}
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Top, icons...),
			lipgloss.JoinHorizontal(lipgloss.Top, labels...),
		)
		if end < len(items) {
			lines = append(lines, "")
		}
	}

	// Keep the dots on the last row of the popup
	for len(lines) < contentHeight-1 {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight-1 {
		lines = lines[:contentHeight-1]
	}
	lines = append(lines, m.renderDots(contentWidth, len(lines)+1))

	return m.styles.Overlay.
		Width(contentWidth).
		Height(contentHeight).
		Render(strings.Join(lines, "\n"))
}

// renderDots draws one dot per page centered on row y
func (m *MenuPopup) renderDots(width, y int) string {
	var dots []string
	for p := menu.FirstPage; p <= menu.LastPage; p++ {
		if p == m.page {
			dots = append(dots, m.styles.DotActive.Render("●"))
		} else {
			dots = append(dots, m.styles.Dot.Render("○"))
		}
	}
	// Each dot takes a cell plus a separating space
	row := strings.Join(dots, " ")
	dotsWidth := 2*(menu.LastPage-menu.FirstPage+1) - 1
	x0 := 1 + max((width-dotsWidth)/2, 0)
	for p := menu.FirstPage; p <= menu.LastPage; p++ {
		x := x0 + 2*(p-menu.FirstPage)
		m.hits.add(y, x, x+1, Target{Kind: TargetMenuDot, Index: p})
	}
	return strings.Repeat(" ", x0-1) + row
}
