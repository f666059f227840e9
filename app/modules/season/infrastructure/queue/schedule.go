package seasonqueue

import (
	"time"
)

// utcMidnightSchedule fires once per day at 00:00 UTC. Implements River's
// PeriodicSchedule. There is no catch-up of missed midnights: a process that
// was down across the boundary simply waits for the next one.
type utcMidnightSchedule struct{}

func (utcMidnightSchedule) Next(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return next
}
