package window

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/pocket/internal/keys"
	"github.com/kmacinski/pocket/internal/ui"
)

// Currency is a quote card on the home screen
type Currency struct {
	Symbol string
	Code   string
	Value  string
}

// Shortcut is a quick-launch app icon
type Shortcut struct {
	Name  string
	Glyph string
}

// Currencies is the first card row
var Currencies = []Currency{
	{Symbol: "$", Code: "USD", Value: "1.00"},
	{Symbol: "€", Code: "EUR", Value: "0.92"},
	{Symbol: "£", Code: "GBP", Value: "0.79"},
}

// Crypto is the second card row
var Crypto = []Currency{
	{Symbol: "₿", Code: "Bitcoin", Value: "$43,250"},
	{Symbol: "Ξ", Code: "Ethereum", Value: "$2,280"},
}

// Shortcuts is the quick-launch grid, four per row
var Shortcuts = []Shortcut{
	{Name: "GitHub", Glyph: "GH"},
	{Name: "Telegram", Glyph: "TG"},
	{Name: "WhatsApp", Glyph: "WA"},
	{Name: "Instagram", Glyph: "IG"},
	{Name: "X", Glyph: "X"},
	{Name: "Facebook", Glyph: "FB"},
	{Name: "YouTube", Glyph: "YT"},
	{Name: "Google", Glyph: "G"},
}

const shortcutsPerRow = 4

// Home is the start page: search bar, quote cards and app shortcuts
type Home struct {
	Base
	search   textinput.Model
	onSubmit func(query string) tea.Cmd
}

// NewHome creates a new home screen window
func NewHome(styles ui.Styles) *Home {
	ti := textinput.New()
	ti.Placeholder = "Search Google or type a URL"
	ti.Prompt = "G  "
	ti.CharLimit = 256

	return &Home{
		Base:   NewBase("home", styles),
		search: ti,
	}
}

// SetOnSubmit sets the callback for enter in the search bar
func (h *Home) SetOnSubmit(fn func(query string) tea.Cmd) {
	h.onSubmit = fn
}

// SearchFocused reports whether the search bar takes key input
func (h *Home) SearchFocused() bool {
	return h.search.Focused()
}

// FocusSearch moves key input into the search bar
func (h *Home) FocusSearch() tea.Cmd {
	h.focused = true
	return h.search.Focus()
}

// BlurSearch releases key input
func (h *Home) BlurSearch() {
	h.focused = false
	h.search.Blur()
}

// Query returns the current search text
func (h *Home) Query() string {
	return h.search.Value()
}

// Update handles input while the search bar is focused
func (h *Home) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !h.search.Focused() {
		return h, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.DefaultKeyMap.Enter) {
		query := strings.TrimSpace(h.search.Value())
		h.search.Reset()
		h.BlurSearch()
		if query == "" || h.onSubmit == nil {
			return h, nil
		}
		return h, h.onSubmit(query)
	}

	var cmd tea.Cmd
	h.search, cmd = h.search.Update(msg)
	return h, cmd
}

// View renders the home screen
func (h *Home) View(width, height int) string {
	h.hits.reset()
	if width < 4 || height < 1 {
		return ""
	}

	var blocks []string
	y := 0
	push := func(block string) int {
		top := y
		blocks = append(blocks, block)
		y += lipgloss.Height(block)
		return top
	}

	// Search bar
	barStyle := h.styles.SearchBar
	if h.search.Focused() {
		barStyle = h.styles.SearchBarFocused
	}
	h.search.Width = max(width-4-len([]rune(h.search.Prompt))-1, 1)
	top := push(barStyle.Width(width - 2).Render(h.search.View()))
	for row := top; row < y; row++ {
		h.hits.line(row, Target{Kind: TargetSearch})
	}

	// Quote cards
	push(h.renderCards(Currencies, width))
	push(h.renderCards(Crypto, width))

	// Add site
	push(h.styles.SectionTitle.Render("+ Add site"))
	push(h.styles.Muted.Render(truncate("Add your favorite websites to quick access", width)))
	push("")

	// Apps grid
	cell := width / shortcutsPerRow
	for start := 0; start < len(Shortcuts); start += shortcutsPerRow {
		end := min(start+shortcutsPerRow, len(Shortcuts))
		var icons, labels []string
		for _, app := range Shortcuts[start:end] {
			icons = append(icons, lipgloss.PlaceHorizontal(cell, lipgloss.Center, h.styles.AppIcon.Render(app.Glyph)))
			labels = append(labels, lipgloss.PlaceHorizontal(cell, lipgloss.Center, h.styles.AppLabel.Render(truncate(app.Name, cell-1))))
		}
		row := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, icons...),
			lipgloss.JoinHorizontal(lipgloss.Top, labels...),
		)
		top := push(row)
		for i := start; i < end; i++ {
			x0 := (i - start) * cell
			for r := top; r < y; r++ {
				h.hits.add(r, x0, x0+cell, Target{Kind: TargetApp, Index: i})
			}
		}
	}

	return strings.Join(blocks, "\n")
}

func (h *Home) renderCards(cards []Currency, width int) string {
	if len(cards) == 0 {
		return ""
	}
	cw := width / len(cards)
	var rendered []string
	for i, c := range cards {
		w := cw
		if i == len(cards)-1 {
			w = width - cw*(len(cards)-1)
		}
		inner := max(w-2, 1)
		body := lipgloss.JoinVertical(lipgloss.Center,
			h.styles.CardSymbol.Render(c.Symbol),
			h.styles.CardCode.Render(truncate(c.Code, inner)),
			h.styles.CardValue.Render(truncate(c.Value, inner)),
		)
		rendered = append(rendered, h.styles.Card.Width(inner).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
