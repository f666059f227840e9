package wanderingqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpawnHoursScheduleNext(t *testing.T) {
	schedule := newSpawnHoursSchedule([]int{9, 15, 21})

	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC), schedule.Next(now))

	// Past the last hour of the day, wrap to tomorrow's first.
	late := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), schedule.Next(late))

	// Exactly on a spawn hour the next fire is the following one.
	onTheHour := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC), schedule.Next(onTheHour))
}

func TestSpawnHoursScheduleDefaultsToMidnight(t *testing.T) {
	schedule := newSpawnHoursSchedule(nil)

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), schedule.Next(now))
}

func TestSpawnHoursScheduleFiltersOutOfRange(t *testing.T) {
	schedule := newSpawnHoursSchedule([]int{-3, 6, 24, 30})

	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []int{6}, schedule.hours)
	assert.Equal(t, time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC), schedule.Next(now))
}

func TestSpawnHoursScheduleSortsInput(t *testing.T) {
	schedule := newSpawnHoursSchedule([]int{21, 9, 15})
	assert.Equal(t, []int{9, 15, 21}, schedule.hours)
}
