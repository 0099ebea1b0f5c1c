package menu

import "pkt.systems/pslog"

const (
	FirstPage = 1
	LastPage  = 3

	// DefaultSwipeThreshold is the minimum horizontal travel, in pixels,
	// that counts as a swipe
	DefaultSwipeThreshold = 50
)

// State is the paginated menu's view state
type State struct {
	page      int
	open      bool
	threshold int
	log       pslog.Logger
}

// New creates a closed menu showing the first page
func New(threshold int, log pslog.Logger) *State {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &State{
		page:      FirstPage,
		threshold: threshold,
		log:       log,
	}
}

// Page returns the visible page, always within [FirstPage, LastPage]
func (s *State) Page() int { return s.page }

// IsOpen reports whether the overlay is visible
func (s *State) IsOpen() bool { return s.open }

// Threshold returns the swipe threshold in pixels
func (s *State) Threshold() int { return s.threshold }

// SetThreshold replaces the swipe threshold; non-positive values are ignored
func (s *State) SetThreshold(px int) {
	if px > 0 {
		s.threshold = px
	}
}

func (s *State) Open()   { s.open = true }
func (s *State) Close()  { s.open = false }
func (s *State) Toggle() { s.open = !s.open }

// SetPage jumps to page n. Out-of-range values are ignored.
func (s *State) SetPage(n int) bool {
	if n < FirstPage || n > LastPage {
		return false
	}
	s.page = n
	return true
}

// NextPage moves one page forward, stopping at the last page
func (s *State) NextPage() bool {
	return s.page < LastPage && s.SetPage(s.page+1)
}

// PrevPage moves one page back, stopping at the first page
func (s *State) PrevPage() bool {
	return s.page > FirstPage && s.SetPage(s.page-1)
}

// Swipe applies a horizontal gesture from startX to endX. A leftward swipe
// beyond the threshold advances, a rightward one goes back. Short swipes
// and swipes past either end do nothing.
func (s *State) Swipe(startX, endX int) bool {
	diff := startX - endX
	if abs(diff) <= s.threshold {
		return false
	}

	var moved bool
	if diff > 0 {
		moved = s.NextPage()
	} else {
		moved = s.PrevPage()
	}
	if moved && s.log != nil {
		s.log.Debug("menu swiped", "diff", diff, "page", s.page)
	}
	return moved
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
