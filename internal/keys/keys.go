package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Escape key.Binding

	// Nav bar
	Back    key.Binding
	Forward key.Binding
	Home    key.Binding
	Tabs    key.Binding
	Menu    key.Binding

	// Tabs overlay
	NewTab  key.Binding
	Close   key.Binding
	Restore key.Binding
	Yank    key.Binding

	// Menu
	Page1 key.Binding
	Page2 key.Binding
	Page3 key.Binding

	// Actions
	Search key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default keybindings
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/l", "menu page"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("h/l", "menu page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/restore"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "forward"),
	),
	Home: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "home"),
	),
	Tabs: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tabs"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	NewTab: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new tab"),
	),
	Close: key.NewBinding(
		key.WithKeys("x", "d"),
		key.WithHelp("x", "close/delete"),
	),
	Restore: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restore"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Page1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "menu page 1"),
	),
	Page2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "menu page 2"),
	),
	Page3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "menu page 3"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// HelpBindings returns the keybindings to display in help
func HelpBindings() []key.Binding {
	return []key.Binding{
		DefaultKeyMap.Tabs,
		DefaultKeyMap.Menu,
		DefaultKeyMap.Home,
		DefaultKeyMap.Back,
		DefaultKeyMap.Forward,
		DefaultKeyMap.NewTab,
		DefaultKeyMap.Up,
		DefaultKeyMap.Enter,
		DefaultKeyMap.Close,
		DefaultKeyMap.Restore,
		DefaultKeyMap.Yank,
		DefaultKeyMap.Left,
		DefaultKeyMap.Search,
		DefaultKeyMap.Escape,
		DefaultKeyMap.Help,
		DefaultKeyMap.Quit,
	}
}
