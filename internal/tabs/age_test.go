package tabs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "Just now"},
		{"thirty seconds", 30_000 * time.Millisecond, "Just now"},
		{"just under a minute", 59_999 * time.Millisecond, "Just now"},
		{"one minute", time.Minute, "1 minute ago"},
		{"ninety seconds", 90_000 * time.Millisecond, "1 minute ago"},
		{"fifty nine minutes", 59 * time.Minute, "59 minutes ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"two hours", 7_200_000 * time.Millisecond, "2 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"two days", 172_800_000 * time.Millisecond, "2 days ago"},
		{"future stamp", -time.Hour, "Just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(now, now.Add(-tt.elapsed)))
		})
	}
}
