package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/keys"
	"github.com/kmacinski/pocket/internal/tabs"
	"github.com/kmacinski/pocket/internal/ui"
)

// rowsPerTab is the number of lines each tab card takes
const rowsPerTab = 2

// headerRows covers the title, the new tab button and a spacer
const headerRows = 3

// faviconMark prefixes the badge of a tab whose site icon was found
const faviconMark = "◉"

// TabList is the tab-management overlay with active and suspended sections
type TabList struct {
	Base
	active    []tabs.Tab
	suspended []tabs.Tab
	focusedID tabs.ID
	now       time.Time
	favicon   func(host string) tabs.FaviconStatus

	cursor int
	offset int // first visible body line
}

// NewTabList creates a new tab overlay window
func NewTabList(styles ui.Styles) *TabList {
	return &TabList{
		Base: NewBase("tabs", styles),
		now:  time.Now(),
	}
}

// SetTabs replaces the rendered registry snapshot
func (t *TabList) SetTabs(active, suspended []tabs.Tab, focused tabs.ID) {
	t.active = active
	t.suspended = suspended
	t.focusedID = focused
	if total := t.rowCount(); t.cursor >= total {
		t.cursor = max(0, total-1)
	}
}

// SetNow sets the reference time for suspension ages
func (t *TabList) SetNow(now time.Time) {
	t.now = now
}

// SetFaviconLookup sets how favicon state is resolved per hostname
func (t *TabList) SetFaviconLookup(fn func(host string) tabs.FaviconStatus) {
	t.favicon = fn
}

// Selected returns the tab under the cursor and whether it is suspended
func (t *TabList) Selected() (tabs.Tab, bool, bool) {
	if t.cursor < len(t.active) {
		return t.active[t.cursor], false, true
	}
	i := t.cursor - len(t.active)
	if i >= 0 && i < len(t.suspended) {
		return t.suspended[i], true, true
	}
	return tabs.Tab{}, false, false
}

// Select moves the cursor to the tab with id, if it is listed
func (t *TabList) Select(id tabs.ID) {
	for i, tab := range t.active {
		if tab.ID == id {
			t.cursor = i
			return
		}
	}
	for i, tab := range t.suspended {
		if tab.ID == id {
			t.cursor = len(t.active) + i
			return
		}
	}
}

// Cursor returns the selected row index across both sections
func (t *TabList) Cursor() int {
	return t.cursor
}

func (t *TabList) rowCount() int {
	return len(t.active) + len(t.suspended)
}

// Update handles cursor movement
func (t *TabList) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if t.cursor < t.rowCount()-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		}
	}
	return t, nil
}

type bodyLine struct {
	text    string
	targets []span
}

// View renders the overlay
func (t *TabList) View(width, height int) string {
	t.hits.reset()

	contentWidth := width - 2
	contentHeight := height - 2
	if contentWidth < 8 || contentHeight < headerRows {
		return ""
	}

	var lines []string

	// Title
	title := t.styles.OverlayTitle.Render("❐ My Tabs")
	closeBtn := t.styles.Action.Render("✕")
	gap := max(contentWidth-lipgloss.Width(title)-lipgloss.Width(closeBtn)-1, 1)
	lines = append(lines, title+strings.Repeat(" ", gap)+closeBtn)
	t.hits.add(1, 1+contentWidth-3, 1+contentWidth, Target{Kind: TargetCloseTabs})

	lines = append(lines, t.styles.ListItemSelected.Render(" [+] New Tab"))
	t.hits.line(2, Target{Kind: TargetNewTab})
	lines = append(lines, "")

	body := t.bodyLines(contentWidth)
	visible := contentHeight - headerRows
	t.ensureVisible(visible)

	for i := t.offset; i < len(body) && i < t.offset+visible; i++ {
		y := 1 + headerRows + (i - t.offset)
		for _, s := range body[i].targets {
			t.hits.add(y, 1+s.x0, 1+s.x1, s.target)
		}
		lines = append(lines, body[i].text)
	}

	return t.styles.Overlay.
		Width(contentWidth).
		Height(contentHeight).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// bodyLines builds the scrollable part. Cursor row r starts at line
// rowStart(r).
func (t *TabList) bodyLines(width int) []bodyLine {
	var body []bodyLine

	if t.rowCount() == 0 {
		body = append(body,
			bodyLine{text: t.styles.Muted.Render(" No tabs yet")},
			bodyLine{text: ""},
			bodyLine{
				text:    t.styles.ListItemSelected.Render(" [+] Create Your First Tab"),
				targets: []span{{x0: 0, x1: width, target: Target{Kind: TargetNewTab}}},
			},
		)
		return body
	}

	if len(t.active) > 0 {
		body = append(body, bodyLine{text: t.styles.SectionTitle.Render(fmt.Sprintf(" ● Active Tabs (%d)", len(t.active)))})
		for i, tab := range t.active {
			body = append(body, t.activeLines(tab, i == t.cursor, width)...)
		}
	}

	if len(t.suspended) > 0 {
		if len(t.active) > 0 {
			body = append(body, bodyLine{text: ""})
		}
		body = append(body, bodyLine{text: t.styles.SectionTitle.Render(fmt.Sprintf(" ⏸ Suspended Tabs (%d)", len(t.suspended)))})
		for i, tab := range t.suspended {
			body = append(body, t.suspendedLines(tab, len(t.active)+i == t.cursor, width)...)
		}
	}

	return body
}

// rowStart returns the body line where cursor row r begins
func (t *TabList) rowStart(r int) int {
	if r < len(t.active) {
		return 1 + r*rowsPerTab
	}
	start := 0
	if len(t.active) > 0 {
		start = 1 + len(t.active)*rowsPerTab + 1
	}
	return start + 1 + (r-len(t.active))*rowsPerTab
}

func (t *TabList) ensureVisible(visible int) {
	if visible < 1 || t.rowCount() == 0 {
		t.offset = 0
		return
	}
	top := t.rowStart(t.cursor)
	bottom := top + rowsPerTab - 1
	if t.cursor == 0 || t.cursor == len(t.active) {
		top-- // keep the section title in view
	}
	if top < t.offset {
		t.offset = max(top, 0)
	} else if bottom >= t.offset+visible {
		t.offset = bottom - visible + 1
	}
}

func (t *TabList) badge(tab tabs.Tab) string {
	host := tab.Host()
	text := " " + tabs.Glyph(tab.Icon) + " "
	if t.favicon != nil && t.favicon(host) == tabs.FaviconFound && host != "" {
		text = faviconMark + strings.ToUpper(host[:1]) + " "
	}
	return ui.Gradient(text, tab.Color.From, tab.Color.To)
}

func (t *TabList) activeLines(tab tabs.Tab, selected bool, width int) []bodyLine {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	marker := " "
	if tab.ID == t.focusedID {
		marker = t.styles.ActiveMarker.Render("●")
	}

	titleStyle := t.styles.ListItem
	if selected {
		titleStyle = t.styles.ListItemSelected
	}

	badge := t.badge(tab)
	closeBtn := t.styles.ActionDanger.Render("✕")
	prefix := cursor + badge + " "
	avail := width - lipgloss.Width(prefix) - 4
	title := titleStyle.Render(truncate(tab.Title, avail))
	gap := max(width-lipgloss.Width(prefix)-lipgloss.Width(title)-3, 1)
	first := prefix + title + strings.Repeat(" ", gap) + marker + " " + closeBtn

	second := strings.Repeat(" ", lipgloss.Width(prefix)) + t.styles.ListItemMuted.Render(truncate(tab.Host(), avail))

	row := Target{Kind: TargetTab, Tab: tab.ID}
	return []bodyLine{
		{text: first, targets: []span{
			{x0: 0, x1: width, target: row},
			{x0: width - 2, x1: width, target: Target{Kind: TargetTabClose, Tab: tab.ID}},
		}},
		{text: second, targets: []span{{x0: 0, x1: width, target: row}}},
	}
}

func (t *TabList) suspendedLines(tab tabs.Tab, selected bool, width int) []bodyLine {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	titleStyle := t.styles.ListItemMuted
	if selected {
		titleStyle = t.styles.ListItemSelected
	}

	badge := t.badge(tab)
	restoreBtn := t.styles.Action.Render("↺")
	deleteBtn := t.styles.ActionDanger.Render("✗")
	prefix := cursor + badge + " "
	avail := width - lipgloss.Width(prefix) - 5
	title := titleStyle.Render(truncate(tab.Title, avail))
	gap := max(width-lipgloss.Width(prefix)-lipgloss.Width(title)-4, 1)
	first := prefix + title + strings.Repeat(" ", gap) + restoreBtn + "  " + deleteBtn

	age := "Just now"
	if tab.SuspendedAt != nil {
		age = tabs.FormatAge(t.now, *tab.SuspendedAt)
	}
	second := strings.Repeat(" ", lipgloss.Width(prefix)) + t.styles.ListItemMuted.Render("◷ "+age)

	row := Target{Kind: TargetSuspended, Tab: tab.ID}
	return []bodyLine{
		{text: first, targets: []span{
			{x0: 0, x1: width, target: row},
			{x0: width - 5, x1: width - 2, target: Target{Kind: TargetSuspendedRestore, Tab: tab.ID}},
			{x0: width - 2, x1: width, target: Target{Kind: TargetSuspendedDelete, Tab: tab.ID}},
		}},
		{text: second, targets: []span{{x0: 0, x1: width, target: row}}},
	}
}
