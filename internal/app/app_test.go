package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/pocket/internal/config"
	"github.com/kmacinski/pocket/internal/layout"
	"github.com/kmacinski/pocket/internal/menu"
	"github.com/kmacinski/pocket/internal/tabs"
	"github.com/kmacinski/pocket/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	app    *App
	copied string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Favicon.Enabled = false
	return newHarnessWithConfig(t, cfg, opts...)
}

func newHarnessWithConfig(t *testing.T, cfg config.Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t}
	base := []Option{
		WithRand(zeroRand{}),
		WithClock(func() time.Time { return testNow }),
		WithClipboard(func(s string) error {
			h.copied = s
			return nil
		}),
	}
	h.app = New(cfg, append(base, opts...)...)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 45})
	return h
}

// send delivers msg and renders, like the program loop does
func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	h.app.View()
	return cmd
}

func (h *harness) keys(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		h.send(msg)
	}
}

func (h *harness) press(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) release(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease})
}

func (h *harness) tap(x, y int) {
	h.press(x, y)
	h.release(x, y)
}

func (h *harness) slot(name string) layout.Rect {
	h.t.Helper()
	r, ok := h.app.layout.SlotRect(name)
	require.True(h.t, ok, "slot %s not laid out", name)
	return r
}

// navPoint returns a cell inside the nav button
func (h *harness) navPoint(nav window.Nav) (int, int) {
	r := h.slot(layout.SlotNav)
	cell := r.Width / len(window.NavItems)
	return r.X + cell*int(nav) + cell/2, r.Y
}

// collect runs cmd and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNewOpensOneTab(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	active := s.Tabs.Active()
	require.Len(t, active, 1)
	assert.Equal(t, tabs.ID("tab-1"), active[0].ID)
	assert.Equal(t, "New Tab 1", active[0].Title)
	assert.Equal(t, tabs.ID("tab-1"), s.Tabs.FocusedID())
	assert.Equal(t, tabs.IconGlobe, active[0].Icon)
	assert.Equal(t, window.NavHome, s.Nav)
	assert.Equal(t, menu.FirstPage, s.Menu.Page())
	assert.False(t, s.Menu.IsOpen())
}

func TestViewBeforeResize(t *testing.T) {
	cfg := config.Default()
	cfg.Favicon.Enabled = false
	a := New(cfg)
	assert.Equal(t, "Loading...", a.View())
}

func TestViewShowsChrome(t *testing.T) {
	h := newHarness(t)
	view := h.app.View()
	assert.Contains(t, view, Brand)
	assert.Contains(t, view, "Add site")
	assert.Contains(t, view, "New Tab 1")
}

func TestTabKeysFlow(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	h.keys("t")
	assert.True(t, s.TabsOpen)
	assert.Equal(t, window.NavTabs, s.Nav)
	assert.Contains(t, h.app.View(), "My Tabs")

	h.keys("n")
	assert.Equal(t, []tabs.ID{"tab-1", "tab-2"}, ids(s.Tabs.Active()))
	assert.Equal(t, tabs.ID("tab-2"), s.Tabs.FocusedID())

	// Cursor sits on the new tab; close it
	h.keys("x")
	assert.Equal(t, []tabs.ID{"tab-1"}, ids(s.Tabs.Active()))
	assert.Equal(t, []tabs.ID{"tab-2"}, ids(s.Tabs.Suspended()))
	assert.Equal(t, tabs.ID("tab-1"), s.Tabs.FocusedID())
	assert.Contains(t, h.app.View(), "Suspended Tabs")

	// Cursor moved onto the suspended row; restore it
	h.keys("r")
	assert.Equal(t, []tabs.ID{"tab-2", "tab-1"}, ids(s.Tabs.Active()))
	assert.Empty(t, s.Tabs.Suspended())
	assert.Equal(t, tabs.ID("tab-2"), s.Tabs.FocusedID())

	// Switch with enter
	h.keys("j", "enter")
	assert.Equal(t, tabs.ID("tab-1"), s.Tabs.FocusedID())

	h.keys("esc")
	assert.False(t, s.TabsOpen)
	assert.Equal(t, window.NavHome, s.Nav)
}

func TestDeleteSuspendedWithKeys(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	h.keys("t", "x")
	assert.Empty(t, s.Tabs.Active())
	assert.Equal(t, tabs.ID(""), s.Tabs.FocusedID())
	require.Len(t, s.Tabs.Suspended(), 1)

	h.keys("x")
	assert.Empty(t, s.Tabs.Suspended())
	assert.Contains(t, h.app.View(), "Create Your First Tab")

	h.keys("n")
	assert.Equal(t, []tabs.ID{"tab-2"}, ids(s.Tabs.Active()), "ids are never reused")
}

func TestMenuKeys(t *testing.T) {
	h := newHarness(t)
	m := h.app.State().Menu

	h.keys("m")
	assert.True(t, m.IsOpen())
	assert.Equal(t, window.NavMenu, h.app.State().Nav)

	h.keys("l")
	assert.Equal(t, 2, m.Page())
	h.keys("right", "right")
	assert.Equal(t, 3, m.Page(), "no wraparound")
	h.keys("h")
	assert.Equal(t, 2, m.Page())
	h.keys("1")
	assert.Equal(t, 1, m.Page())
	h.keys("left")
	assert.Equal(t, 1, m.Page())
	h.keys("3")

	h.keys("m")
	assert.False(t, m.IsOpen())
	h.keys("m")
	assert.True(t, m.IsOpen())
	assert.Equal(t, 3, m.Page(), "page persists across close and open")
}

func TestMenuKeysIgnoredWhileClosed(t *testing.T) {
	h := newHarness(t)
	h.keys("l", "2")
	assert.Equal(t, 1, h.app.State().Menu.Page())
}

func TestMenuActivateWithEnter(t *testing.T) {
	h := newHarness(t)
	h.keys("m", "enter")
	assert.Contains(t, h.app.statusMessage, "Opening: Night mode")

	// Down a row lands on Find in page
	h.keys("j", "enter")
	assert.Contains(t, h.app.statusMessage, "Opening: Find in page")
}

func TestOutsideClickClosesMenu(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	h.keys("m")
	require.True(t, s.Menu.IsOpen())

	header := h.slot(layout.SlotHeader)
	h.tap(header.X+1, header.Y)
	assert.False(t, s.Menu.IsOpen())
}

func TestMenuToggleButton(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	x, y := h.navPoint(window.NavMenu)
	h.tap(x, y)
	assert.True(t, s.Menu.IsOpen())
	assert.Equal(t, window.NavMenu, s.Nav)

	x, y = h.navPoint(window.NavMenu)
	h.tap(x, y)
	assert.False(t, s.Menu.IsOpen(), "the toggle is not an outside click")
}

func TestOutsideClickClosesTabs(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	x, y := h.navPoint(window.NavTabs)
	h.tap(x, y)
	require.True(t, s.TabsOpen)

	// Tapping the tabs button again keeps the overlay
	h.tap(x, y)
	assert.True(t, s.TabsOpen)

	// Tapping inside the overlay keeps it
	content := h.slot(layout.SlotContent)
	h.tap(content.X+3, content.Y+content.Height-2)
	assert.True(t, s.TabsOpen)

	// Back is outside both
	x, y = h.navPoint(window.NavBack)
	h.tap(x, y)
	assert.False(t, s.TabsOpen)
	assert.Equal(t, window.NavBack, s.Nav)
}

func TestMenuToggleClosesTabs(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	h.keys("t")
	x, y := h.navPoint(window.NavMenu)
	h.tap(x, y)

	assert.False(t, s.TabsOpen)
	assert.True(t, s.Menu.IsOpen())
	assert.Equal(t, window.NavMenu, s.Nav)
}

func TestTabOverlayClicks(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()
	h.keys("t")

	content := h.slot(layout.SlotContent)

	// New tab button is the second overlay line
	h.tap(content.X+4, content.Y+2)
	assert.Equal(t, []tabs.ID{"tab-1", "tab-2"}, ids(s.Tabs.Active()))

	// First tab card starts below the section title
	rowY := content.Y + 1 + 3 + 1
	h.tap(content.X+4, rowY)
	assert.Equal(t, tabs.ID("tab-1"), s.Tabs.FocusedID())

	// Close button at the right edge of the card
	h.tap(content.X+content.Width-3, rowY)
	assert.Equal(t, []tabs.ID{"tab-2"}, ids(s.Tabs.Active()))
	assert.Equal(t, []tabs.ID{"tab-1"}, ids(s.Tabs.Suspended()))
	assert.Equal(t, tabs.ID("tab-2"), s.Tabs.FocusedID())

	// Close button in the title row dismisses the overlay
	h.tap(content.X+content.Width-2, content.Y+1)
	assert.False(t, s.TabsOpen)
	assert.Equal(t, window.NavHome, s.Nav)
}

func TestSuspendedRowButtons(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()
	h.keys("t", "n", "x", "k", "x")
	require.Empty(t, s.Tabs.Active())
	require.Equal(t, []tabs.ID{"tab-1", "tab-2"}, ids(s.Tabs.Suspended()))

	content := h.slot(layout.SlotContent)
	inner := content.Width - 2

	// Only the suspended section is listed
	rowY := content.Y + 1 + 3 + 1

	// Restore the first suspended tab
	h.tap(content.X+1+inner-4, rowY)
	assert.Equal(t, []tabs.ID{"tab-1"}, ids(s.Tabs.Active()))
	assert.Equal(t, tabs.ID("tab-1"), s.Tabs.FocusedID())

	// Now the active section comes first: title, one card, spacer, title
	rowY = content.Y + 1 + 3 + 1 + 2 + 1 + 1
	h.tap(content.X+1+inner-1, rowY)
	assert.Empty(t, s.Tabs.Suspended())
	assert.Equal(t, []tabs.ID{"tab-1"}, ids(s.Tabs.Active()))
}

func TestMenuItemTap(t *testing.T) {
	h := newHarness(t)
	h.keys("m")
	r := h.slot(layout.SlotMenu)

	h.tap(r.X+3, r.Y+1)
	assert.Equal(t, "Opening: Night mode", h.app.statusMessage)

	cell := (r.Width - 2) / 3
	h.tap(r.X+1+cell+2, r.Y+4)
	assert.Equal(t, "", h.app.statusMessage, "disabled items are inert")
	assert.True(t, h.app.State().Menu.IsOpen())
}

func TestMenuDotTap(t *testing.T) {
	h := newHarness(t)
	h.keys("m")
	r := h.slot(layout.SlotMenu)

	inner := r.Width - 2
	x0 := 1 + (inner-5)/2
	dotsY := r.Y + r.Height - 2
	h.tap(r.X+x0+4, dotsY)
	assert.Equal(t, 3, h.app.State().Menu.Page())

	h.tap(r.X+x0, dotsY)
	assert.Equal(t, 1, h.app.State().Menu.Page())
}

func TestMenuSwipe(t *testing.T) {
	h := newHarness(t)
	m := h.app.State().Menu
	h.keys("m")
	r := h.slot(layout.SlotMenu)
	y := r.Y + r.Height - 4 // padding row, no item under it

	// 10 columns at 8px is past the 50px threshold
	h.press(r.X+30, y)
	h.release(r.X+20, y)
	assert.Equal(t, 2, m.Page())

	// 5 columns is 40px, a tap
	h.press(r.X+30, y)
	h.release(r.X+25, y)
	assert.Equal(t, 2, m.Page())

	h.press(r.X+20, y)
	h.release(r.X+30, y)
	assert.Equal(t, 1, m.Page())

	h.press(r.X+20, y)
	h.release(r.X+35, y)
	assert.Equal(t, 1, m.Page(), "no wraparound")
	assert.True(t, m.IsOpen())
}

func TestSwipeDoesNotActivateItem(t *testing.T) {
	h := newHarness(t)
	h.keys("m")
	r := h.slot(layout.SlotMenu)

	h.press(r.X+3, r.Y+1)
	h.release(r.X+30, r.Y+1)
	assert.Equal(t, "", h.app.statusMessage)
	assert.Equal(t, 1, h.app.State().Menu.Page(), "a right swipe on page 1 goes nowhere")
}

func TestReleaseWithoutPress(t *testing.T) {
	h := newHarness(t)
	h.keys("m")
	r := h.slot(layout.SlotMenu)
	h.release(r.X+3, r.Y+1)
	assert.Equal(t, "", h.app.statusMessage)
}

func TestYank(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, config.Default().HomeURL, h.copied)

	h.send(msgs[0])
	assert.Equal(t, "Copied: "+config.Default().HomeURL, h.app.statusMessage)
}

func TestYankFailureIsStatus(t *testing.T) {
	h := newHarness(t, WithClipboard(func(string) error { return errors.New("no clipboard") }))
	msgs := collect(h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}))
	require.Len(t, msgs, 1)
	h.send(msgs[0])
	assert.Contains(t, h.app.statusMessage, "no clipboard")
}

func TestYankWithoutTab(t *testing.T) {
	h := newHarness(t)
	h.keys("t", "x")
	assert.Nil(t, h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}))
	assert.Equal(t, "No tab to copy", h.app.statusMessage)
}

func TestSearchOwnsKeys(t *testing.T) {
	h := newHarness(t)
	h.keys("/")
	require.True(t, h.app.home.SearchFocused())

	h.keys("q", "t")
	assert.Equal(t, "qt", h.app.home.Query())
	assert.False(t, h.app.State().TabsOpen)

	msgs := collect(h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Len(t, msgs, 1)
	assert.Equal(t, SearchSubmittedMsg{Query: "qt"}, msgs[0])
	assert.False(t, h.app.home.SearchFocused())

	h.send(msgs[0])
	assert.Equal(t, "Searching: qt", h.app.statusMessage)
}

func TestSearchEscape(t *testing.T) {
	h := newHarness(t)
	h.keys("/", "esc")
	assert.False(t, h.app.home.SearchFocused())
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	msgs := collect(h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}))
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])
}

func TestHelpModal(t *testing.T) {
	h := newHarness(t)
	h.keys("?")
	assert.Equal(t, winHelp, h.app.State().ActiveModal)
	assert.Contains(t, h.app.View(), "Keybindings")

	h.keys("t")
	assert.False(t, h.app.State().TabsOpen, "keys are swallowed by the modal")

	h.keys("esc")
	assert.Equal(t, "", h.app.State().ActiveModal)
}

func TestNavKeys(t *testing.T) {
	h := newHarness(t)
	s := h.app.State()

	h.keys("b")
	assert.Equal(t, window.NavBack, s.Nav)
	h.keys("f")
	assert.Equal(t, window.NavForward, s.Nav)
	h.keys("t", "H")
	assert.Equal(t, window.NavHome, s.Nav)
	assert.False(t, s.TabsOpen)
}

func TestShortcutTap(t *testing.T) {
	h := newHarness(t)
	content := h.slot(layout.SlotContent)

	found := false
	for y := content.Y; y < content.Y+content.Height && !found; y++ {
		target := h.app.home.TargetAt(1, y-content.Y)
		if target.Kind == window.TargetApp {
			h.tap(content.X+1, y)
			found = true
		}
	}
	require.True(t, found, "no shortcut drawn")
	assert.Equal(t, "Opening: GitHub", h.app.statusMessage)
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t)
	cfg := config.Default()
	cfg.Favicon.Enabled = false
	cfg.Menu.SwipeThreshold = 100
	cfg.Colors.Accent = "#00ff00"

	h.send(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, 100, h.app.State().Menu.Threshold())
	assert.Equal(t, "Config reloaded", h.app.statusMessage)

	// 10 columns is 80px, below the new threshold
	h.keys("m")
	r := h.slot(layout.SlotMenu)
	y := r.Y + r.Height - 4
	h.press(r.X+30, y)
	h.release(r.X+20, y)
	assert.Equal(t, 1, h.app.State().Menu.Page())
}

func TestConfigError(t *testing.T) {
	h := newHarness(t)
	h.send(ConfigErrorMsg{Err: errors.New("bad yaml")})
	assert.Equal(t, "Config error: bad yaml", h.app.statusMessage)
}

func TestFaviconProbedOncePerHost(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "google.com", r.URL.Query().Get("domain"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Favicon.Endpoint = srv.URL
	probe := tabs.NewFaviconProbe(srv.URL, 32, time.Second)
	h := newHarnessWithConfig(t, cfg, WithFaviconProbe(probe))

	msgs := collect(h.app.Init())
	require.Len(t, msgs, 1)
	assert.Equal(t, FaviconResolvedMsg{Host: "google.com", Found: true}, msgs[0])

	// Every new tab shares the host, so nothing else is dispatched
	h.keys("t", "n")
	assert.Nil(t, h.send(msgs[0]))
	assert.Equal(t, tabs.FaviconFound, h.app.favicons["google.com"])
	assert.Equal(t, int32(1), hits.Load())
}

func TestFaviconMissingFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := config.Default()
	h := newHarnessWithConfig(t, cfg, WithFaviconProbe(tabs.NewFaviconProbe(srv.URL, 32, time.Second)))

	msgs := collect(h.app.Init())
	require.Len(t, msgs, 1)
	h.send(msgs[0])
	assert.Equal(t, tabs.FaviconMissing, h.app.favicons["google.com"])
}

func TestConfigReloadDuringFaviconLookup(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Favicon.Timeout = 5 * time.Second
	probe := tabs.NewFaviconProbe(srv.URL, 32, cfg.Favicon.Timeout)
	h := newHarnessWithConfig(t, cfg, WithFaviconProbe(probe))

	cmd := h.app.Init()
	require.NotNil(t, cmd)
	done := make(chan []tea.Msg)
	go func() { done <- collect(cmd) }()

	reloaded := config.Default()
	reloaded.Favicon.Endpoint = "http://127.0.0.1:1/favicons"
	reloaded.Favicon.Size = 64
	reloaded.Favicon.Timeout = 2 * time.Second
	for i := 0; i < 100; i++ {
		h.app.applyConfig(reloaded)
	}
	close(release)

	msgs := <-done
	require.Len(t, msgs, 1)
	assert.Equal(t, FaviconResolvedMsg{Host: "google.com", Found: true}, msgs[0])

	assert.Equal(t, srv.URL, probe.Endpoint, "the running lookup keeps its probe")
	assert.Equal(t, 32, probe.Size)
	require.NotSame(t, probe, h.app.probe)
	assert.Equal(t, reloaded.Favicon.Endpoint, h.app.probe.Endpoint)
	assert.Equal(t, 64, h.app.probe.Size)
	assert.Equal(t, 2*time.Second, h.app.probe.Client.Timeout)

	reloaded.Favicon.Enabled = false
	h.app.applyConfig(reloaded)
	assert.Nil(t, h.app.probe)
}

func TestStatusBar(t *testing.T) {
	h := newHarness(t)
	h.keys("m", "l")
	bar := h.app.renderStatusBar()
	assert.Contains(t, bar, "New Tab 1")
	assert.Contains(t, bar, "1 open")
	assert.Contains(t, bar, "menu 2/3")
	assert.False(t, strings.Contains(bar, "suspended"))
}

func ids(list []tabs.Tab) []tabs.ID {
	out := make([]tabs.ID, 0, len(list))
	for _, tab := range list {
		out = append(out, tab.ID)
	}
	return out
}
