package planner

import (
	"errors"
	"strings"
	"time"
)

type PeriodType string

const (
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

var ErrInvalidPeriod = errors.New("period must be \"week\" or \"month\"")

// Window is the half-open range [Start, End) a balance report covers.
type Window struct {
	Platform string     `json:"platform"`
	Period   PeriodType `json:"period"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
}

// ComputeWindow derives the window containing ref. Weeks start on
// weekStart, months are calendar months, both in ref's location.
func ComputeWindow(platform string, period PeriodType, ref time.Time, weekStart time.Weekday) (Window, error) {
	switch period {
	case PeriodWeek:
		day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
		offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
		start := day.AddDate(0, 0, -offset)
		return Window{
			Platform: platform,
			Period:   PeriodWeek,
			Start:    start,
			End:      start.AddDate(0, 0, 7),
		}, nil

	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Window{
			Platform: platform,
			Period:   PeriodMonth,
			Start:    start,
			End:      start.AddDate(0, 1, 0),
		}, nil
	}
	return Window{}, ErrInvalidPeriod
}

// ParseWeekday reads a weekday name from config, defaulting to Monday.
func ParseWeekday(name string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday
	case "monday", "":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	}
	return time.Monday
}
