package app

import (
	"github.com/kmacinski/pocket/internal/menu"
	"github.com/kmacinski/pocket/internal/tabs"
	"github.com/kmacinski/pocket/internal/window"
)

// Region classifies where a pointer press landed for outside-click
// dismissal
type Region int

const (
	RegionOther Region = iota
	RegionMenuPopup
	RegionMenuToggle
	RegionTabsOverlay
	RegionTabsButton
)

// State holds the shared application state
type State struct {
	// Navigation
	Nav      window.Nav
	TabsOpen bool

	// Core
	Tabs *tabs.Registry
	Menu *menu.State

	// UI
	ActiveModal string // empty if no modal
}

// NewState creates a new state with defaults
func NewState(registry *tabs.Registry, menuState *menu.State) *State {
	return &State{
		Nav:  window.NavHome,
		Tabs: registry,
		Menu: menuState,
	}
}

// SelectNav applies a nav bar button. Tabs opens the overlay and menu
// toggles the popup; the others only move the selection.
func (s *State) SelectNav(nav window.Nav) {
	switch nav {
	case window.NavTabs:
		s.OpenTabs()
	case window.NavMenu:
		s.ToggleMenu()
	default:
		s.Nav = nav
	}
}

// OpenTabs shows the tab overlay
func (s *State) OpenTabs() {
	s.Nav = window.NavTabs
	s.TabsOpen = true
}

// DismissTabs hides the tab overlay and returns the selection to home
func (s *State) DismissTabs() {
	s.TabsOpen = false
	s.Nav = window.NavHome
}

// ToggleMenu selects menu and flips the popup
func (s *State) ToggleMenu() {
	s.Nav = window.NavMenu
	s.Menu.Toggle()
}

// PointerDown closes whatever the press landed outside of. The menu stays
// open for presses on the popup or its toggle; the tab overlay stays open
// for presses on the overlay or the tabs button.
func (s *State) PointerDown(region Region) {
	if s.Menu.IsOpen() && region != RegionMenuPopup && region != RegionMenuToggle {
		s.Menu.Close()
	}
	if s.TabsOpen && region != RegionTabsOverlay && region != RegionTabsButton {
		s.DismissTabs()
	}
}

// ToggleModal toggles a modal on/off
func (s *State) ToggleModal(name string) {
	if s.ActiveModal == name {
		s.ActiveModal = ""
	} else {
		s.ActiveModal = name
	}
}

// CloseModal closes any open modal
func (s *State) CloseModal() {
	s.ActiveModal = ""
}
