package seasonqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUTCMidnightScheduleNext(t *testing.T) {
	schedule := utcMidnightSchedule{}

	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), schedule.Next(now))

	// Exactly at midnight the next fire is tomorrow, not now.
	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), schedule.Next(midnight))

	// Month boundary.
	eom := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), schedule.Next(eom))
}

func TestUTCMidnightScheduleNormalizesZone(t *testing.T) {
	schedule := utcMidnightSchedule{}

	// 23:00 UTC expressed in a +05:00 zone still rolls to the UTC midnight.
	zoned := time.Date(2026, 3, 15, 4, 0, 0, 0, time.FixedZone("east", 5*3600))
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), schedule.Next(zoned))
}
