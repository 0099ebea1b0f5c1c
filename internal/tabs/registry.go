package tabs

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"pkt.systems/pslog"
)

// DefaultHomeURL is the placeholder address given to new tabs
const DefaultHomeURL = "https://www.google.com"

// Rand is the random source used for icon and color selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Registry owns the active and suspended tab sets and the focus.
// It is not safe for concurrent use; a single controller mutates it.
type Registry struct {
	active    []Tab
	suspended []Tab
	focused   ID
	counter   int

	rand    Rand
	now     func() time.Time
	homeURL string
	log     pslog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithRand sets the random source for icon and color selection
func WithRand(r Rand) Option {
	return func(reg *Registry) {
		if r != nil {
			reg.rand = r
		}
	}
}

// WithClock sets the time source used for creation and suspension stamps
func WithClock(now func() time.Time) Option {
	return func(reg *Registry) {
		if now != nil {
			reg.now = now
		}
	}
}

// WithHomeURL sets the URL given to new tabs
func WithHomeURL(url string) Option {
	return func(reg *Registry) {
		if url != "" {
			reg.homeURL = url
		}
	}
}

// WithLogger sets the logger for lifecycle events
func WithLogger(log pslog.Logger) Option {
	return func(reg *Registry) {
		if log != nil {
			reg.log = log
		}
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{
		counter: 1,
		rand:    globalRand{},
		now:     time.Now,
		homeURL: DefaultHomeURL,
		log:     pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured}),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// Create opens a new tab at the end of the active set and focuses it
func (r *Registry) Create() ID {
	id := ID(fmt.Sprintf("tab-%d", r.counter))
	r.counter++

	tab := Tab{
		ID:        id,
		Title:     fmt.Sprintf("New Tab %d", len(r.active)+1),
		URL:       r.homeURL,
		Icon:      Icons[r.rand.IntN(len(Icons))],
		Color:     Gradients[r.rand.IntN(len(Gradients))],
		CreatedAt: r.now(),
	}
	r.active = append(r.active, tab)
	r.focused = id

	r.log.With("tab", id, "icon", tab.Icon, "color", tab.Color.Name).Debug("tab created")
	return id
}

// Close suspends an active tab. Unknown ids are ignored.
func (r *Registry) Close(id ID) {
	idx := indexOf(r.active, id)
	if idx < 0 {
		return
	}

	tab := r.active[idx]
	stamp := r.now()
	tab.SuspendedAt = &stamp

	r.active = append(r.active[:idx:idx], r.active[idx+1:]...)
	r.suspended = append([]Tab{tab}, r.suspended...)

	if r.focused == id {
		r.focused = ""
		if len(r.active) > 0 {
			r.focused = r.active[0].ID
		}
	}

	r.log.With("tab", id, "focus", r.focused).Debug("tab suspended")
}

// Switch focuses an active tab. It returns false and leaves focus
// unchanged when id is not in the active set.
func (r *Registry) Switch(id ID) bool {
	if indexOf(r.active, id) < 0 {
		r.log.With("tab", id).Trace("tab switch ignored")
		return false
	}
	r.focused = id
	r.log.With("tab", id).Debug("tab focused")
	return true
}

// Restore moves a suspended tab to the front of the active set and
// focuses it. Unknown ids are ignored.
func (r *Registry) Restore(id ID) {
	idx := indexOf(r.suspended, id)
	if idx < 0 {
		return
	}

	tab := r.suspended[idx]
	tab.SuspendedAt = nil

	r.suspended = append(r.suspended[:idx:idx], r.suspended[idx+1:]...)
	r.active = append([]Tab{tab}, r.active...)
	r.focused = id

	r.log.With("tab", id).Debug("tab restored")
}

// DeleteSuspended permanently drops a suspended tab. Focus is untouched.
func (r *Registry) DeleteSuspended(id ID) {
	idx := indexOf(r.suspended, id)
	if idx < 0 {
		return
	}
	r.suspended = append(r.suspended[:idx:idx], r.suspended[idx+1:]...)
	r.log.With("tab", id).Debug("tab deleted")
}

// Active returns a copy of the active set in display order
func (r *Registry) Active() []Tab {
	return cloneTabs(r.active)
}

// Suspended returns a copy of the suspended set, most recent first
func (r *Registry) Suspended() []Tab {
	return cloneTabs(r.suspended)
}

// FocusedID returns the focused tab id, empty when nothing is focused
func (r *Registry) FocusedID() ID {
	return r.focused
}

// Focused returns the focused tab
func (r *Registry) Focused() (Tab, bool) {
	if r.focused == "" {
		return Tab{}, false
	}
	return r.Get(r.focused)
}

// Get looks a tab up in either set
func (r *Registry) Get(id ID) (Tab, bool) {
	if idx := indexOf(r.active, id); idx >= 0 {
		return r.active[idx].clone(), true
	}
	if idx := indexOf(r.suspended, id); idx >= 0 {
		return r.suspended[idx].clone(), true
	}
	return Tab{}, false
}

// Len returns the number of active and suspended tabs
func (r *Registry) Len() (active, suspended int) {
	return len(r.active), len(r.suspended)
}

func indexOf(list []Tab, id ID) int {
	for i, tab := range list {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

func (t Tab) clone() Tab {
	if t.SuspendedAt != nil {
		stamp := *t.SuspendedAt
		t.SuspendedAt = &stamp
	}
	return t
}

func cloneTabs(list []Tab) []Tab {
	out := make([]Tab, len(list))
	for i, tab := range list {
		out[i] = tab.clone()
	}
	return out
}
