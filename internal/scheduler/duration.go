package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d as "2d 3h 15m", omitting zero units. Zero is
// "0m" and negative durations are "N/A".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "N/A"
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
