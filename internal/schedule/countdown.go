package schedule

import (
	"fmt"
	"time"
)

// TimeUntil formats the remaining time before release against the given
// reference "now". The reference is refreshed on a coarse interval by
// the service, so countdowns are approximately live without per-second
// recomputation.
func TimeUntil(release, now time.Time) string {
	diff := release.Sub(now)
	if diff <= 0 {
		return "Available now"
	}

	if diff >= 24*time.Hour {
		days := int(diff.Hours()) / 24
		hours := int(diff.Hours()) % 24
		return fmt.Sprintf("%dd %dh", days, hours)
	}

	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
