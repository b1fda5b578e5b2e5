package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindowWeek(t *testing.T) {
	// Thursday 2026-01-15.
	ref := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)

	w, err := ComputeWindow("instagram", PeriodWeek, ref, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, "instagram", w.Platform)
}

func TestComputeWindowWeekOnStartDay(t *testing.T) {
	// A Monday reference belongs to the week it opens.
	ref := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	w, err := ComputeWindow("tiktok", PeriodWeek, ref, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, ref, w.Start)
}

func TestComputeWindowWeekSundayStart(t *testing.T) {
	ref := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	w, err := ComputeWindow("pinterest", PeriodWeek, ref, time.Sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestComputeWindowMonth(t *testing.T) {
	ref := time.Date(2026, 2, 10, 23, 59, 0, 0, time.UTC)

	w, err := ComputeWindow("instagram", PeriodMonth, ref, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), w.End)
}

func TestComputeWindowInvalidPeriod(t *testing.T) {
	_, err := ComputeWindow("instagram", "fortnight", time.Now(), time.Monday)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestParseWeekday(t *testing.T) {
	assert.Equal(t, time.Sunday, ParseWeekday("Sunday"))
	assert.Equal(t, time.Monday, ParseWeekday(""))
	assert.Equal(t, time.Monday, ParseWeekday("not-a-day"))
	assert.Equal(t, time.Friday, ParseWeekday(" friday "))
}
