package tabs

import "time"

// ID identifies a tab. Ids are never reused within a registry.
type ID string

// Icon is the symbolic glyph tag assigned to a tab at creation
type Icon string

const (
	IconGlobe Icon = "globe"
	IconHome  Icon = "home"
	IconStar  Icon = "star"
	IconHeart Icon = "heart"
	IconBolt  Icon = "bolt"
	IconFire  Icon = "fire"
)

// Icons lists every tag a new tab can draw from
var Icons = []Icon{IconGlobe, IconHome, IconStar, IconHeart, IconBolt, IconFire}

// Gradient is a two-stop color token used for a tab's preview card
type Gradient struct {
	Name string
	From string
	To   string
}

// Gradients lists every color token a new tab can draw from
var Gradients = []Gradient{
	{Name: "indigo", From: "#667eea", To: "#764ba2"},
	{Name: "rose", From: "#f093fb", To: "#f5576c"},
	{Name: "sky", From: "#4facfe", To: "#00f2fe"},
	{Name: "mint", From: "#43e97b", To: "#38f9d7"},
	{Name: "sunset", From: "#fa709a", To: "#fee140"},
	{Name: "pastel", From: "#a8edea", To: "#fed6e3"},
}

// Tab is one open or suspended browsing context
type Tab struct {
	ID          ID
	Title       string
	URL         string
	Icon        Icon
	Color       Gradient
	CreatedAt   time.Time
	SuspendedAt *time.Time // set only while suspended
}

// Suspended reports whether the tab carries a suspension stamp
func (t Tab) Suspended() bool {
	return t.SuspendedAt != nil
}

// Host returns the display hostname of the tab's URL
func (t Tab) Host() string {
	return Hostname(t.URL)
}
