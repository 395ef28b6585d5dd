package schedule

import (
	"sort"
	"time"

	"animecal/pkg/models"
)

const calendarDays = 30

// Daily keeps episodes releasing within [now, now+7d] inclusive, sorted
// ascending by release time. The sort is stable: ties keep their
// original order.
func Daily(episodes []models.Episode, now time.Time) []models.Episode {
	cutoff := now.Add(releaseWindow)

	out := make([]models.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if ep.ReleaseTime.Before(now) || ep.ReleaseTime.After(cutoff) {
			continue
		}
		out = append(out, ep)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReleaseTime.Before(out[j].ReleaseTime)
	})
	return out
}

// CalendarDates returns the next 30 consecutive local calendar days
// starting today, each at local midnight.
func CalendarDates(now time.Time) []time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make([]time.Time, 0, calendarDays)
	for i := 0; i < calendarDays; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// ForDate keeps episodes whose release time falls within the date's
// local 00:00:00.000-23:59:59.999 window.
func ForDate(episodes []models.Episode, date time.Time) []models.Episode {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	out := make([]models.Episode, 0)
	for _, ep := range episodes {
		if ep.ReleaseTime.Before(start) || ep.ReleaseTime.After(end) {
			continue
		}
		out = append(out, ep)
	}
	return out
}

// Monthly buckets the episodes into the 30-day calendar scaffold. Each
// day is re-filtered independently; fine at this data scale (~20
// episodes), a proper interval index would be needed for more.
func Monthly(episodes []models.Episode, now time.Time) []models.CalendarDay {
	dates := CalendarDates(now)
	out := make([]models.CalendarDay, 0, len(dates))
	for _, d := range dates {
		out = append(out, models.CalendarDay{
			Date:     d.Format("2006-01-02"),
			Episodes: ForDate(episodes, d),
		})
	}
	return out
}
