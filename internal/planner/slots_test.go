package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySlotsInstagramMonday(t *testing.T) {
	slots := DaySlots("instagram", time.Monday)
	require.Len(t, slots, 2)

	assert.Equal(t, 11, slots[0].Hour)
	assert.Contains(t, slots[0].ContentTypes, "carousel")
	assert.Equal(t, 18, slots[1].Hour)
	assert.Contains(t, slots[1].ContentTypes, "reel")

	for _, s := range slots {
		assert.Equal(t, int(time.Monday), s.DayOfWeek)
	}
}

func TestDaySlotsUnknownPlatform(t *testing.T) {
	assert.Empty(t, DaySlots("myspace", time.Monday))
}

func TestDaySlotsEveryDayCovered(t *testing.T) {
	for _, platform := range []string{"instagram", "tiktok", "pinterest"} {
		for day := time.Sunday; day <= time.Saturday; day++ {
			assert.NotEmpty(t, DaySlots(platform, day), "%s %s", platform, day)
		}
	}
}

func TestDefaultOptimalSlotsRankedByScore(t *testing.T) {
	for _, platform := range []string{"instagram", "tiktok", "pinterest"} {
		slots := DefaultOptimalSlots(platform)
		require.NotEmpty(t, slots, platform)
		for i := 1; i < len(slots); i++ {
			assert.GreaterOrEqual(t, slots[i-1].Score, slots[i].Score, platform)
		}
	}
}

func TestOccurrenceAfter(t *testing.T) {
	// Thursday 2026-01-15 10:00 UTC.
	after := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	// Same day, later hour.
	got := OccurrenceAfter(4, 19, after)
	assert.Equal(t, time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC), got)

	// Same day, earlier hour rolls a full week forward.
	got = OccurrenceAfter(4, 9, after)
	assert.Equal(t, time.Date(2026, 1, 22, 9, 0, 0, 0, time.UTC), got)

	// Next Monday.
	got = OccurrenceAfter(1, 11, after)
	assert.Equal(t, time.Date(2026, 1, 19, 11, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Monday, got.Weekday())
}
