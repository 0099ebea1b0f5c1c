package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/window"
)

// Direction represents the split direction
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Slot names used by the phone layouts
const (
	SlotHeader  = "header"
	SlotContent = "content"
	SlotMenu    = "menu"
	SlotNav     = "nav"
)

// Slot represents a named area in the layout. A slot with a Size keeps
// that many rows/columns; the rest share what is left by Ratio.
type Slot struct {
	Name      string
	Size      int
	Ratio     int
	Direction Direction
	Children  []Slot
}

// Layout defines the structure of slots
type Layout struct {
	Name      string
	Direction Direction
	Slots     []Slot
}

// Predefined layouts
var (
	Tall = Layout{
		Name:      "tall",
		Direction: Vertical,
		Slots: []Slot{
			{Name: SlotHeader, Size: 2},
			{Name: SlotContent, Ratio: 1},
			{Name: SlotNav, Size: 2},
		},
	}

	TallMenu = Layout{
		Name:      "tall-menu",
		Direction: Vertical,
		Slots: []Slot{
			{Name: SlotHeader, Size: 2},
			{Name: SlotContent, Ratio: 1},
			{Name: SlotMenu, Size: 14},
			{Name: SlotNav, Size: 2},
		},
	}

	Compact = Layout{
		Name:      "compact",
		Direction: Vertical,
		Slots: []Slot{
			{Name: SlotHeader, Size: 1},
			{Name: SlotContent, Ratio: 1},
			{Name: SlotNav, Size: 1},
		},
	}

	CompactMenu = Layout{
		Name:      "compact-menu",
		Direction: Vertical,
		Slots: []Slot{
			{Name: SlotHeader, Size: 1},
			{Name: SlotMenu, Ratio: 1},
			{Name: SlotNav, Size: 1},
		},
	}
)

// Breakpoint defines when to switch layouts
type Breakpoint struct {
	MinHeight int
	Layout    Layout
	Menu      Layout // used while the menu popup is open
}

// ResponsiveConfig defines breakpoints for responsive layouts
type ResponsiveConfig struct {
	Breakpoints []Breakpoint
}

// DefaultResponsive is the default responsive configuration
var DefaultResponsive = ResponsiveConfig{
	Breakpoints: []Breakpoint{
		{MinHeight: 28, Layout: Tall, Menu: TallMenu},
		{MinHeight: 0, Layout: Compact, Menu: CompactMenu},
	},
}

// GetLayout returns the appropriate layout for the given inner height
func (r *ResponsiveConfig) GetLayout(height int, menuOpen bool) Layout {
	for _, bp := range r.Breakpoints {
		if height >= bp.MinHeight {
			if menuOpen {
				return bp.Menu
			}
			return bp.Layout
		}
	}
	if menuOpen {
		return CompactMenu
	}
	return Compact
}

// Rect is a screen region in terminal cells
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Manager renders the phone frame and remembers where each slot landed
type Manager struct {
	responsive ResponsiveConfig
	current    Layout
	menuOpen   bool

	width      int
	height     int
	maxWidth   int
	maxHeight  int
	frame      Rect
	rects      map[string]Rect
	frameStyle lipgloss.Style
}

// NewManager creates a new layout manager. maxWidth and maxHeight bound the
// phone frame; zero means unbounded.
func NewManager(responsive ResponsiveConfig, maxWidth, maxHeight int) *Manager {
	return &Manager{
		responsive: responsive,
		current:    Tall,
		maxWidth:   maxWidth,
		maxHeight:  maxHeight,
		rects:      map[string]Rect{},
		frameStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
	}
}

// SetFrameStyle sets the border style drawn around the phone
func (m *Manager) SetFrameStyle(style lipgloss.Style) {
	m.frameStyle = style
}

// SetBounds changes the frame limits and recomputes the layout
func (m *Manager) SetBounds(maxWidth, maxHeight int) {
	m.maxWidth = maxWidth
	m.maxHeight = maxHeight
	m.Resize(m.width, m.height)
}

// Resize updates the layout dimensions. One row below the frame is kept
// for the status line.
func (m *Manager) Resize(width, height int) {
	m.width = width
	m.height = height

	fw := width
	if m.maxWidth > 0 && fw > m.maxWidth {
		fw = m.maxWidth
	}
	fh := height - 1
	if m.maxHeight > 0 && fh > m.maxHeight {
		fh = m.maxHeight
	}
	if fh < 0 {
		fh = 0
	}
	m.frame = Rect{X: (width - fw) / 2, Y: 0, Width: fw, Height: fh}
	m.current = m.responsive.GetLayout(m.inner().Height, m.menuOpen)
	m.computeRects()
}

// SetMenuOpen switches between the plain and the menu variant of the layout
func (m *Manager) SetMenuOpen(open bool) {
	if m.menuOpen == open {
		return
	}
	m.menuOpen = open
	m.Resize(m.width, m.height)
}

// CurrentLayout returns the current layout
func (m *Manager) CurrentLayout() Layout {
	return m.current
}

// Frame returns the outer phone rectangle
func (m *Manager) Frame() Rect {
	return m.frame
}

// SlotRect returns where the named slot is drawn
func (m *Manager) SlotRect(name string) (Rect, bool) {
	r, ok := m.rects[name]
	return r, ok
}

// HitTest returns the slot under (x, y), or "" when outside every slot
func (m *Manager) HitTest(x, y int) string {
	for name, r := range m.rects {
		if r.Contains(x, y) {
			return name
		}
	}
	return ""
}

func (m *Manager) inner() Rect {
	w := max(m.frame.Width-2, 0)
	h := max(m.frame.Height-2, 0)
	return Rect{X: m.frame.X + 1, Y: m.frame.Y + 1, Width: w, Height: h}
}

func (m *Manager) computeRects() {
	m.rects = map[string]Rect{}
	m.place(m.current.Slots, m.current.Direction, m.inner())
}

func (m *Manager) place(slots []Slot, dir Direction, area Rect) {
	dimension := area.Height
	if dir == Horizontal {
		dimension = area.Width
	}
	sizes := calculateSizes(slots, dimension)

	offset := 0
	for i, slot := range slots {
		r := area
		if dir == Horizontal {
			r.X += offset
			r.Width = sizes[i]
		} else {
			r.Y += offset
			r.Height = sizes[i]
		}
		offset += sizes[i]

		if len(slot.Children) > 0 {
			m.place(slot.Children, slot.Direction, r)
		} else {
			m.rects[slot.Name] = r
		}
	}
}

// Render renders all windows according to the layout
func (m *Manager) Render(windows map[string]window.Window, assignments map[string]string, statusBar string) string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	inner := m.inner()
	content := m.renderSlots(m.current.Slots, m.current.Direction, inner.Width, inner.Height, windows, assignments)
	phone := m.frameStyle.Render(content)
	phone = lipgloss.NewStyle().MarginLeft(m.frame.X).Render(phone)

	status := lipgloss.NewStyle().
		MarginLeft(m.frame.X).
		MaxWidth(m.frame.X + m.frame.Width).
		Render(statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, phone, status)
}

func (m *Manager) renderSlots(slots []Slot, dir Direction, width, height int, windows map[string]window.Window, assignments map[string]string) string {
	if len(slots) == 0 {
		return ""
	}

	dimension := height
	if dir == Horizontal {
		dimension = width
	}
	sizes := calculateSizes(slots, dimension)

	var rendered []string
	for i, slot := range slots {
		var slotWidth, slotHeight int
		if dir == Horizontal {
			slotWidth = sizes[i]
			slotHeight = height
		} else {
			slotWidth = width
			slotHeight = sizes[i]
		}
		if slotWidth <= 0 || slotHeight <= 0 {
			continue
		}

		var content string
		if len(slot.Children) > 0 {
			content = m.renderSlots(slot.Children, slot.Direction, slotWidth, slotHeight, windows, assignments)
		} else if w, ok := windows[assignments[slot.Name]]; ok {
			content = w.View(slotWidth, slotHeight)
		} else {
			content = strings.Repeat(" ", slotWidth)
		}

		// Clip so hit testing matches what is on screen
		content = lipgloss.NewStyle().
			Width(slotWidth).Height(slotHeight).
			MaxWidth(slotWidth).MaxHeight(slotHeight).
			Render(content)
		rendered = append(rendered, content)
	}

	if dir == Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func calculateSizes(slots []Slot, dimension int) []int {
	sizes := make([]int, len(slots))
	remaining := dimension
	totalRatio := 0
	for i, s := range slots {
		if s.Size > 0 {
			sizes[i] = min(s.Size, max(remaining, 0))
			remaining -= sizes[i]
		} else {
			totalRatio += max(s.Ratio, 1)
		}
	}
	if remaining < 0 {
		remaining = 0
	}

	flexible := remaining
	last := -1
	for i, s := range slots {
		if s.Size > 0 {
			continue
		}
		size := flexible * max(s.Ratio, 1) / totalRatio
		sizes[i] = size
		remaining -= size
		last = i
	}
	// Last flexible slot gets remaining space to avoid rounding issues
	if last >= 0 {
		sizes[last] += remaining
	}
	return sizes
}

// GetSlotNames returns all slot names in the layout
func (m *Manager) GetSlotNames() []string {
	return getSlotNamesRecursive(m.current.Slots)
}

func getSlotNamesRecursive(slots []Slot) []string {
	var names []string
	for _, slot := range slots {
		if len(slot.Children) > 0 {
			names = append(names, getSlotNamesRecursive(slot.Children)...)
		} else {
			names = append(names, slot.Name)
		}
	}
	return names
}
