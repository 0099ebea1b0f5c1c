package menu

// Item is one entry of the settings menu
type Item struct {
	Icon     string
	Label    string
	Disabled bool
}

// Pages is the fixed menu catalog, indexed from page 1
var Pages = [LastPage][]Item{
	{
		{Icon: "☾", Label: "Night mode"},
		{Icon: "⛨", Label: "Ad blocking"},
		{Icon: "↺", Label: "History"},
		{Icon: "⌕", Label: "Find in page"},
		{Icon: "⤓", Label: "Save", Disabled: true},
		{Icon: "⚑", Label: "Saved pages"},
		{Icon: "◐", Label: "Incognito mode"},
		{Icon: "⟳", Label: "Refresh"},
		{Icon: "↻", Label: "Reload"},
	},
	{
		{Icon: "⚑", Label: "Bookmarks"},
		{Icon: "⇩", Label: "Downloads"},
		{Icon: "⇪", Label: "Share"},
		{Icon: "⊞", Label: "Add bookmark"},
		{Icon: "▭", Label: "Desktop site"},
		{Icon: "文", Label: "Translate", Disabled: true},
	},
	{
		{Icon: "⌂", Label: "Add to home screen"},
		{Icon: "♪", Label: "Read aloud"},
		{Icon: "Aa", Label: "Text size"},
		{Icon: "◍", Label: "Theme"},
		{Icon: "ƒ", Label: "Font"},
		{Icon: "⚙", Label: "Settings"},
	},
}

// Items returns the entries of page n, or nil when n is out of range
func Items(n int) []Item {
	if n < FirstPage || n > LastPage {
		return nil
	}
	return Pages[n-1]
}

// Activate resolves the item at index on page n. It returns false for
// disabled items and out-of-range positions.
func Activate(n, index int) (Item, bool) {
	items := Items(n)
	if index < 0 || index >= len(items) {
		return Item{}, false
	}
	item := items[index]
	if item.Disabled {
		return item, false
	}
	return item, true
}
