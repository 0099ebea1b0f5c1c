package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/kmacinski/pocket/internal/config"
	"github.com/kmacinski/pocket/internal/keys"
	"github.com/kmacinski/pocket/internal/layout"
	"github.com/kmacinski/pocket/internal/logging"
	"github.com/kmacinski/pocket/internal/menu"
	"github.com/kmacinski/pocket/internal/tabs"
	"github.com/kmacinski/pocket/internal/ui"
	"github.com/kmacinski/pocket/internal/window"
	"pkt.systems/pslog"
)

// Brand is the name shown in the header
const Brand = "Pocket"

// Window names
const (
	winHeader = "header"
	winHome   = "home"
	winTabs   = "tabs"
	winMenu   = "menu"
	winNav    = "nav"
	winHelp   = "help"
)

// App is the main application model
type App struct {
	state  *State
	cfg    config.Config
	loader *config.Loader
	log    pslog.Logger
	ctx    context.Context
	layout *layout.Manager
	styles ui.Styles

	// Windows
	header    *window.Header
	home      *window.Home
	tabList   *window.TabList
	menuPopup *window.MenuPopup
	navBar    *window.NavBar
	help      *window.Help

	// Window registry
	windows     map[string]window.Window
	assignments map[string]string

	// Dimensions
	width  int
	height int

	// Status message, cleared on the next input event
	statusMessage string

	// Favicon lookups, keyed by hostname
	probe    *tabs.FaviconProbe
	favicons map[string]tabs.FaviconStatus

	// Pending press inside the menu popup; resolved on release as a tap
	// or a swipe
	press *menuPress

	now     func() time.Time
	copy    func(string) error
	program *tea.Program
}

type menuPress struct {
	x      int
	target window.Target
}

type options struct {
	log    pslog.Logger
	ctx    context.Context
	rand   tabs.Rand
	now    func() time.Time
	loader *config.Loader
	probe  *tabs.FaviconProbe
	copy   func(string) error
}

// Option configures an App
type Option func(*options)

// WithLogger sets the logger shared by the app, registry and menu
func WithLogger(log pslog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithContext sets the parent context for background lookups
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithRand sets the random source for tab icons and colors
func WithRand(r tabs.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLoader enables config hot reload once SetProgram is called
func WithLoader(l *config.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithFaviconProbe overrides the probe built from config
func WithFaviconProbe(p *tabs.FaviconProbe) Option {
	return func(o *options) {
		o.probe = p
	}
}

// WithClipboard overrides how URLs are copied
func WithClipboard(write func(string) error) Option {
	return func(o *options) {
		o.copy = write
	}
}

// New creates a new application. One tab is opened at startup.
func New(cfg config.Config, opts ...Option) *App {
	o := options{
		now:  time.Now,
		copy: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}

	regOpts := []tabs.Option{
		tabs.WithClock(o.now),
		tabs.WithHomeURL(cfg.HomeURL),
		tabs.WithLogger(o.log),
	}
	if o.rand != nil {
		regOpts = append(regOpts, tabs.WithRand(o.rand))
	}
	state := NewState(tabs.NewRegistry(regOpts...), menu.New(cfg.Menu.SwipeThreshold, o.log))

	styles := ui.NewStyles(ui.ColorsFromConfig(cfg.Colors))

	// Create windows
	header := window.NewHeader(styles, Brand)
	home := window.NewHome(styles)
	tabList := window.NewTabList(styles)
	menuPopup := window.NewMenuPopup(styles)
	navBar := window.NewNavBar(styles)
	help := window.NewHelp(styles)

	// Create window registry
	windows := map[string]window.Window{
		winHeader: header,
		winHome:   home,
		winTabs:   tabList,
		winMenu:   menuPopup,
		winNav:    navBar,
		winHelp:   help,
	}

	assignments := map[string]string{
		layout.SlotHeader:  winHeader,
		layout.SlotContent: winHome,
		layout.SlotMenu:    winMenu,
		layout.SlotNav:     winNav,
	}

	lm := layout.NewManager(layout.DefaultResponsive, cfg.Layout.MaxWidth, cfg.Layout.MaxHeight)
	lm.SetFrameStyle(styles.Frame)

	probe := o.probe
	if probe == nil && cfg.Favicon.Enabled {
		probe = tabs.NewFaviconProbe(cfg.Favicon.Endpoint, cfg.Favicon.Size, cfg.Favicon.Timeout)
	}

	a := &App{
		state:       state,
		cfg:         cfg,
		loader:      o.loader,
		log:         o.log,
		ctx:         o.ctx,
		layout:      lm,
		styles:      styles,
		header:      header,
		home:        home,
		tabList:     tabList,
		menuPopup:   menuPopup,
		navBar:      navBar,
		help:        help,
		windows:     windows,
		assignments: assignments,
		probe:       probe,
		favicons:    map[string]tabs.FaviconStatus{},
		now:         o.now,
		copy:        o.copy,
	}

	home.SetOnSubmit(func(query string) tea.Cmd {
		return func() tea.Msg {
			return SearchSubmittedMsg{Query: query}
		}
	})
	tabList.SetFaviconLookup(func(host string) tabs.FaviconStatus {
		return a.favicons[host]
	})

	state.Tabs.Create()
	return a
}

// State exposes the application state
func (a *App) State() *State {
	return a.state
}

// SetProgram sets the tea.Program reference and starts watching the
// config file
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	if a.loader == nil {
		return
	}

	watching := a.loader.Watch(func(cfg config.Config, e fsnotify.Event) {
		a.log.Debug("config file changed", "file", e.Name, "op", e.Op.String())
		if a.program != nil {
			a.program.Send(ConfigReloadedMsg{Config: cfg})
		}
	}, func(err error) {
		if a.program != nil {
			a.program.Send(ConfigErrorMsg{Err: err})
		}
	})
	if watching {
		a.log.Info("watching config", "file", a.loader.Path())
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.sync()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		a.statusMessage = ""
		if a.state.ActiveModal != "" {
			return a.handleModalKey(msg)
		}
		cmds = append(cmds, a.handleKey(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			a.statusMessage = ""
		}
		if a.state.ActiveModal != "" {
			return a, nil
		}
		cmds = append(cmds, a.handleMouse(msg))

	case FaviconResolvedMsg:
		if msg.Found {
			a.favicons[msg.Host] = tabs.FaviconFound
		} else {
			a.favicons[msg.Host] = tabs.FaviconMissing
		}
		a.log.Debug("favicon resolved", "host", msg.Host, "found", msg.Found)

	case SearchSubmittedMsg:
		a.log.Info("search submitted", "query", msg.Query)
		a.statusMessage = fmt.Sprintf("Searching: %s", msg.Query)

	case ConfigReloadedMsg:
		a.applyConfig(msg.Config)
		a.log.Info("config reloaded")
		a.statusMessage = "Config reloaded"

	case ConfigErrorMsg:
		a.log.Error("config reload failed", "error", msg.Err)
		a.statusMessage = "Config error: " + msg.Err.Error()

	case StatusMsg:
		a.statusMessage = msg.Text

	case ErrorMsg:
		a.log.Error("command failed", "error", msg.Err)
		a.statusMessage = msg.Err.Error()

	default:
		// Cursor blink and other textinput traffic
		if a.home.SearchFocused() {
			_, cmd := a.home.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, a.sync())
	return a, tea.Batch(cmds...)
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow quit
	if key.Matches(msg, keys.DefaultKeyMap.Quit) {
		return a, tea.Quit
	}

	// Close modal on ? or Escape
	if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
		a.state.CloseModal()
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state

	// The search bar owns the keyboard while focused
	if a.home.SearchFocused() {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return tea.Quit
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			a.home.BlurSearch()
			return nil
		}
		_, cmd := a.home.Update(msg)
		return cmd
	}

	// Global keybindings. Nav keys behave like a tap on the button.
	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Quit):
		return tea.Quit

	case key.Matches(msg, keys.DefaultKeyMap.Help):
		s.ToggleModal(winHelp)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Escape):
		switch {
		case s.Menu.IsOpen():
			s.Menu.Close()
		case s.TabsOpen:
			s.DismissTabs()
		}
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Search):
		s.PointerDown(RegionOther)
		return a.home.FocusSearch()

	case key.Matches(msg, keys.DefaultKeyMap.Tabs):
		s.PointerDown(RegionTabsButton)
		s.SelectNav(window.NavTabs)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Menu):
		s.PointerDown(RegionMenuToggle)
		s.SelectNav(window.NavMenu)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Home):
		s.PointerDown(RegionOther)
		s.SelectNav(window.NavHome)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Back):
		s.PointerDown(RegionOther)
		s.SelectNav(window.NavBack)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Forward):
		s.PointerDown(RegionOther)
		s.SelectNav(window.NavForward)
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.NewTab):
		a.newTab()
		return nil

	case key.Matches(msg, keys.DefaultKeyMap.Yank):
		return a.yank()
	}

	if s.Menu.IsOpen() {
		return a.handleMenuKey(msg)
	}
	if s.TabsOpen {
		return a.handleTabsKey(msg)
	}
	return nil
}

func (a *App) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	m := a.state.Menu
	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Left):
		m.PrevPage()
	case key.Matches(msg, keys.DefaultKeyMap.Right):
		m.NextPage()
	case key.Matches(msg, keys.DefaultKeyMap.Page1):
		m.SetPage(1)
	case key.Matches(msg, keys.DefaultKeyMap.Page2):
		m.SetPage(2)
	case key.Matches(msg, keys.DefaultKeyMap.Page3):
		m.SetPage(3)
	case key.Matches(msg, keys.DefaultKeyMap.Enter):
		a.activateMenuItem(a.menuPopup.Cursor())
	default:
		_, cmd := a.menuPopup.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleTabsKey(msg tea.KeyMsg) tea.Cmd {
	reg := a.state.Tabs
	tab, suspended, ok := a.tabList.Selected()

	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Enter):
		if !ok {
			return nil
		}
		if suspended {
			reg.Restore(tab.ID)
			a.selectTab(tab.ID)
		} else {
			reg.Switch(tab.ID)
		}
	case key.Matches(msg, keys.DefaultKeyMap.Close):
		if !ok {
			return nil
		}
		if suspended {
			reg.DeleteSuspended(tab.ID)
		} else {
			reg.Close(tab.ID)
		}
	case key.Matches(msg, keys.DefaultKeyMap.Restore):
		if ok && suspended {
			reg.Restore(tab.ID)
			a.selectTab(tab.ID)
		}
	default:
		_, cmd := a.tabList.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.scroll(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return a.scroll(tea.KeyMsg{Type: tea.KeyDown})
		case tea.MouseButtonLeft:
		default:
			return nil
		}

		slot, target := a.targetAt(msg.X, msg.Y)
		region := a.regionFor(slot, target)
		a.state.PointerDown(region)

		if target.Kind != window.TargetSearch && a.home.SearchFocused() {
			a.home.BlurSearch()
		}

		if region == RegionMenuPopup {
			a.press = &menuPress{x: msg.X, target: target}
			return nil
		}
		return a.click(target)

	case tea.MouseActionRelease:
		p := a.press
		a.press = nil
		if p == nil || !a.state.Menu.IsOpen() {
			return nil
		}

		cw := max(a.cfg.Menu.CellWidth, 1)
		start, end := p.x*cw, msg.X*cw
		if abs(start-end) > a.state.Menu.Threshold() {
			a.state.Menu.Swipe(start, end)
			return nil
		}
		return a.click(p.target)
	}
	return nil
}

func (a *App) scroll(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.state.Menu.IsOpen():
		_, cmd := a.menuPopup.Update(msg)
		return cmd
	case a.state.TabsOpen:
		_, cmd := a.tabList.Update(msg)
		return cmd
	}
	return nil
}

// targetAt resolves a screen cell to the slot and the element drawn there
func (a *App) targetAt(x, y int) (string, window.Target) {
	slot := a.layout.HitTest(x, y)
	if slot == "" {
		return "", window.Target{}
	}
	rect, _ := a.layout.SlotRect(slot)
	w, ok := a.windows[a.assignments[slot]]
	if !ok {
		return slot, window.Target{}
	}
	return slot, w.TargetAt(x-rect.X, y-rect.Y)
}

func (a *App) regionFor(slot string, target window.Target) Region {
	switch slot {
	case layout.SlotMenu:
		return RegionMenuPopup
	case layout.SlotNav:
		if target.Kind != window.TargetNav {
			return RegionOther
		}
		switch window.Nav(target.Index) {
		case window.NavMenu:
			return RegionMenuToggle
		case window.NavTabs:
			return RegionTabsButton
		}
	case layout.SlotContent:
		if a.state.TabsOpen {
			return RegionTabsOverlay
		}
	}
	return RegionOther
}

func (a *App) click(t window.Target) tea.Cmd {
	reg := a.state.Tabs

	switch t.Kind {
	case window.TargetNav:
		a.state.SelectNav(window.Nav(t.Index))
	case window.TargetSearch:
		return a.home.FocusSearch()
	case window.TargetApp:
		if t.Index >= 0 && t.Index < len(window.Shortcuts) {
			name := window.Shortcuts[t.Index].Name
			a.log.Info("Opening: "+name, "kind", "shortcut")
			a.statusMessage = "Opening: " + name
		}
	case window.TargetNewTab:
		a.newTab()
	case window.TargetCloseTabs:
		a.state.DismissTabs()
	case window.TargetTab:
		reg.Switch(t.Tab)
		a.tabList.Select(t.Tab)
	case window.TargetTabClose:
		reg.Close(t.Tab)
	case window.TargetSuspended:
		a.tabList.Select(t.Tab)
	case window.TargetSuspendedRestore:
		reg.Restore(t.Tab)
		a.selectTab(t.Tab)
	case window.TargetSuspendedDelete:
		reg.DeleteSuspended(t.Tab)
	case window.TargetMenuItem:
		a.menuPopup.SetCursor(t.Index)
		a.activateMenuItem(t.Index)
	case window.TargetMenuDot:
		a.state.Menu.SetPage(t.Index)
	}
	return nil
}

func (a *App) newTab() {
	a.selectTab(a.state.Tabs.Create())
}

// selectTab moves the overlay cursor to id, refreshing the list first so
// tabs that just moved are found
func (a *App) selectTab(id tabs.ID) {
	reg := a.state.Tabs
	a.tabList.SetTabs(reg.Active(), reg.Suspended(), reg.FocusedID())
	a.tabList.Select(id)
}

func (a *App) activateMenuItem(index int) {
	page := a.state.Menu.Page()
	item, ok := menu.Activate(page, index)
	if !ok {
		return
	}
	a.log.Info("Opening: "+item.Label, "kind", "menu", "page", page)
	a.statusMessage = "Opening: " + item.Label
}

func (a *App) yank() tea.Cmd {
	tab, ok := a.state.Tabs.Focused()
	if !ok {
		a.statusMessage = "No tab to copy"
		return nil
	}
	write := a.copy
	return func() tea.Msg {
		if err := write(tab.URL); err != nil {
			return ErrorMsg{Err: fmt.Errorf("copying url: %w", err)}
		}
		return StatusMsg{Text: "Copied: " + tab.URL}
	}
}

// sync pushes state into the windows and returns lookups for hosts not
// probed yet
func (a *App) sync() tea.Cmd {
	s := a.state
	active, suspended := s.Tabs.Active(), s.Tabs.Suspended()

	a.navBar.SetSelected(s.Nav)
	a.navBar.SetTabCount(len(active))
	a.layout.SetMenuOpen(s.Menu.IsOpen())
	a.menuPopup.SetPage(s.Menu.Page())
	a.tabList.SetTabs(active, suspended, s.Tabs.FocusedID())
	a.tabList.SetNow(a.now())

	if s.TabsOpen {
		a.assignments[layout.SlotContent] = winTabs
	} else {
		a.assignments[layout.SlotContent] = winHome
	}
	a.menuPopup.SetFocus(s.Menu.IsOpen())
	a.tabList.SetFocus(s.TabsOpen && !s.Menu.IsOpen())

	return a.probeFavicons(append(active, suspended...))
}

func (a *App) probeFavicons(list []tabs.Tab) tea.Cmd {
	if a.probe == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, tab := range list {
		host := tab.Host()
		if host == "" || a.favicons[host] != tabs.FaviconUnknown {
			continue
		}
		a.favicons[host] = tabs.FaviconPending
		cmds = append(cmds, a.lookupFavicon(host))
	}
	return tea.Batch(cmds...)
}

func (a *App) lookupFavicon(host string) tea.Cmd {
	probe := a.probe
	timeout := a.cfg.Favicon.Timeout
	parent := a.ctx
	log := a.log
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		err := probe.Lookup(ctx, host)
		if err != nil {
			log.Debug("favicon unavailable", "host", host, "error", err)
		}
		return FaviconResolvedMsg{Host: host, Found: err == nil}
	}
}

func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	a.state.Menu.SetThreshold(cfg.Menu.SwipeThreshold)

	a.styles = ui.NewStyles(ui.ColorsFromConfig(cfg.Colors))
	for _, w := range a.windows {
		w.SetStyles(a.styles)
	}
	a.layout.SetFrameStyle(a.styles.Frame)
	a.layout.SetBounds(cfg.Layout.MaxWidth, cfg.Layout.MaxHeight)

	// Lookups in flight keep the probe they captured, so it is replaced
	// rather than mutated.
	a.probe = nil
	if cfg.Favicon.Enabled {
		a.probe = tabs.NewFaviconProbe(cfg.Favicon.Endpoint, cfg.Favicon.Size, cfg.Favicon.Timeout)
	}
}

// View renders the application
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	statusBar := a.renderStatusBar()
	mainView := a.layout.Render(a.windows, a.assignments, statusBar)

	if a.state.ActiveModal == winHelp {
		mainView = a.renderWithModal(a.help)
	}

	return mainView
}

func (a *App) renderStatusBar() string {
	active, suspended := a.state.Tabs.Len()

	var parts []string
	if tab, ok := a.state.Tabs.Focused(); ok {
		parts = append(parts, tab.Title)
	}
	parts = append(parts, fmt.Sprintf("%d open", active))
	if suspended > 0 {
		parts = append(parts, fmt.Sprintf("%d suspended", suspended))
	}
	if a.state.Menu.IsOpen() {
		parts = append(parts, fmt.Sprintf("menu %d/%d", a.state.Menu.Page(), menu.LastPage))
	}

	left := " " + strings.Join(parts, " · ")
	if a.statusMessage != "" {
		left += a.styles.Muted.Render(" │ " + a.statusMessage)
	}

	width := a.layout.Frame().Width
	return a.styles.StatusBar.
		MaxWidth(width).
		Render(left)
}

func (a *App) renderWithModal(modal window.Window) string {
	// Calculate modal size - let content determine height
	modalWidth := min(44, a.width-4)
	modalHeight := min(26, a.height-2)

	modalContent := modal.View(modalWidth, modalHeight)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
	)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
