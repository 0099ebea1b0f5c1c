package tabs

import (
	"fmt"
	"time"
)

// FormatAge renders the time elapsed between t and now, e.g. "3 hours ago".
// Spans under a minute, including negative ones, read "Just now".
func FormatAge(now, t time.Time) string {
	elapsed := now.Sub(t)

	days := int64(elapsed / (24 * time.Hour))
	hours := int64(elapsed / time.Hour)
	minutes := int64(elapsed / time.Minute)

	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case minutes > 0:
		return plural(minutes, "minute")
	default:
		return "Just now"
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
