package wanderingqueue

import (
	"sort"
	"time"
)

// spawnHoursSchedule fires at fixed UTC hours, on the hour. Implements
// River's PeriodicSchedule. Like the midnight resolution, there is no
// catch-up: hours missed while the process was down are simply skipped.
type spawnHoursSchedule struct {
	hours []int
}

func newSpawnHoursSchedule(hours []int) spawnHoursSchedule {
	sorted := make([]int, 0, len(hours))
	for _, h := range hours {
		if h >= 0 && h < 24 {
			sorted = append(sorted, h)
		}
	}
	if len(sorted) == 0 {
		sorted = []int{0}
	}
	sort.Ints(sorted)
	return spawnHoursSchedule{hours: sorted}
}

func (s spawnHoursSchedule) Next(now time.Time) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, h := range s.hours {
		candidate := midnight.Add(time.Duration(h) * time.Hour)
		if candidate.After(now) {
			return candidate
		}
	}
	// Wrap to the first hour tomorrow.
	return midnight.AddDate(0, 0, 1).Add(time.Duration(s.hours[0]) * time.Hour)
}
