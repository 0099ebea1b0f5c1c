package window

import "github.com/kmacinski/pocket/internal/tabs"

// TargetKind says what a click landed on
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetNav
	TargetSearch
	TargetApp
	TargetNewTab
	TargetCloseTabs
	TargetTab
	TargetTabClose
	TargetSuspended
	TargetSuspendedRestore
	TargetSuspendedDelete
	TargetMenuItem
	TargetMenuDot
)

// Target is a clickable element recorded while rendering
type Target struct {
	Kind  TargetKind
	Tab   tabs.ID
	Index int
}

type span struct {
	x0, x1 int // [x0, x1)
	target Target
}

// hitMap records clickable spans per rendered line
type hitMap struct {
	lines map[int][]span
}

func (h *hitMap) reset() {
	h.lines = map[int][]span{}
}

// line marks the whole row y as target
func (h *hitMap) line(y int, t Target) {
	h.add(y, 0, 1<<30, t)
}

// add marks cells [x0, x1) of row y. Later spans win over earlier ones.
func (h *hitMap) add(y, x0, x1 int, t Target) {
	if h.lines == nil {
		h.reset()
	}
	h.lines[y] = append(h.lines[y], span{x0: x0, x1: x1, target: t})
}

func (h *hitMap) at(x, y int) Target {
	spans := h.lines[y]
	for i := len(spans) - 1; i >= 0; i-- {
		if x >= spans[i].x0 && x < spans[i].x1 {
			return spans[i].target
		}
	}
	return Target{}
}
