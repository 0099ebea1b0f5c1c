package window

import "github.com/kmacinski/pocket/internal/ui"

// Base provides common functionality for windows
type Base struct {
	name    string
	focused bool
	styles  ui.Styles
	hits    hitMap
}

// NewBase creates a new base window
func NewBase(name string, styles ui.Styles) Base {
	return Base{
		name:   name,
		styles: styles,
	}
}

// Name returns the window name
func (b *Base) Name() string {
	return b.name
}

// Focused returns whether the window is focused
func (b *Base) Focused() bool {
	return b.focused
}

// SetFocus sets the focus state
func (b *Base) SetFocus(focused bool) {
	b.focused = focused
}

// Styles returns the window styles
func (b *Base) Styles() ui.Styles {
	return b.styles
}

// SetStyles swaps the styles, e.g. after a palette reload
func (b *Base) SetStyles(styles ui.Styles) {
	b.styles = styles
}

// TargetAt returns what was drawn at the window-local cell (x, y) during
// the last View call
func (b *Base) TargetAt(x, y int) Target {
	return b.hits.at(x, y)
}
