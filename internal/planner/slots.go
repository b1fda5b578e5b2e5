package planner

import "time"

// ScheduleSlot is one allowed posting slot on a given weekday.
type ScheduleSlot struct {
	DayOfWeek    int      `json:"day_of_week"` // 0 = Sunday
	Hour         int      `json:"hour"`
	ContentTypes []string `json:"allowed_content_types"`
}

// OptimalSlot is a (weekday, hour) pair ranked by engagement score.
type OptimalSlot struct {
	DayOfWeek int     `json:"day_of_week"`
	Hour      int     `json:"hour"`
	Score     float64 `json:"score"`
}

var daySlots = map[string]map[time.Weekday][]ScheduleSlot{
	"instagram": {
		time.Monday:    {{Hour: 11, ContentTypes: []string{"carousel", "image"}}, {Hour: 18, ContentTypes: []string{"reel"}}},
		time.Tuesday:   {{Hour: 11, ContentTypes: []string{"image"}}, {Hour: 19, ContentTypes: []string{"reel"}}},
		time.Wednesday: {{Hour: 12, ContentTypes: []string{"carousel"}}, {Hour: 18, ContentTypes: []string{"reel"}}},
		time.Thursday:  {{Hour: 11, ContentTypes: []string{"image", "carousel"}}, {Hour: 19, ContentTypes: []string{"reel"}}},
		time.Friday:    {{Hour: 10, ContentTypes: []string{"reel"}}, {Hour: 17, ContentTypes: []string{"carousel"}}},
		time.Saturday:  {{Hour: 11, ContentTypes: []string{"reel", "image"}}},
		time.Sunday:    {{Hour: 19, ContentTypes: []string{"carousel"}}},
	},
	"tiktok": {
		time.Monday:    {{Hour: 18, ContentTypes: []string{"video"}}},
		time.Tuesday:   {{Hour: 9, ContentTypes: []string{"video"}}, {Hour: 19, ContentTypes: []string{"video"}}},
		time.Wednesday: {{Hour: 18, ContentTypes: []string{"video", "photo"}}},
		time.Thursday:  {{Hour: 12, ContentTypes: []string{"video"}}, {Hour: 19, ContentTypes: []string{"video"}}},
		time.Friday:    {{Hour: 17, ContentTypes: []string{"video"}}},
		time.Saturday:  {{Hour: 11, ContentTypes: []string{"video", "photo"}}},
		time.Sunday:    {{Hour: 16, ContentTypes: []string{"video"}}},
	},
	"pinterest": {
		time.Monday:    {{Hour: 9, ContentTypes: []string{"pin"}}, {Hour: 20, ContentTypes: []string{"pin"}}},
		time.Tuesday:   {{Hour: 9, ContentTypes: []string{"pin"}}, {Hour: 20, ContentTypes: []string{"pin"}}},
		time.Wednesday: {{Hour: 9, ContentTypes: []string{"pin", "idea_pin"}}},
		time.Thursday:  {{Hour: 9, ContentTypes: []string{"pin"}}, {Hour: 20, ContentTypes: []string{"pin"}}},
		time.Friday:    {{Hour: 9, ContentTypes: []string{"pin"}}},
		time.Saturday:  {{Hour: 10, ContentTypes: []string{"pin", "idea_pin"}}, {Hour: 20, ContentTypes: []string{"pin"}}},
		time.Sunday:    {{Hour: 10, ContentTypes: []string{"pin"}}, {Hour: 21, ContentTypes: []string{"pin"}}},
	},
}

// Fallback optimal tables, used when no engagement history exists yet.
var defaultOptimalSlots = map[string][]OptimalSlot{
	"instagram": {
		{DayOfWeek: 3, Hour: 11, Score: 0.92},
		{DayOfWeek: 2, Hour: 11, Score: 0.88},
		{DayOfWeek: 5, Hour: 10, Score: 0.85},
		{DayOfWeek: 4, Hour: 19, Score: 0.81},
		{DayOfWeek: 1, Hour: 18, Score: 0.78},
	},
	"tiktok": {
		{DayOfWeek: 2, Hour: 9, Score: 0.90},
		{DayOfWeek: 4, Hour: 12, Score: 0.87},
		{DayOfWeek: 4, Hour: 19, Score: 0.84},
		{DayOfWeek: 5, Hour: 17, Score: 0.80},
		{DayOfWeek: 0, Hour: 16, Score: 0.74},
	},
	"pinterest": {
		{DayOfWeek: 6, Hour: 20, Score: 0.93},
		{DayOfWeek: 0, Hour: 21, Score: 0.89},
		{DayOfWeek: 5, Hour: 9, Score: 0.82},
		{DayOfWeek: 1, Hour: 20, Score: 0.79},
		{DayOfWeek: 3, Hour: 9, Score: 0.75},
	},
}

var defaultHours = map[string]int{
	"instagram": 11,
	"tiktok":    18,
	"pinterest": 9,
}

// DaySlots returns the allowed slots for a platform on a weekday, in
// posting order. Unknown platforms get nothing.
func DaySlots(platform string, day time.Weekday) []ScheduleSlot {
	slots := daySlots[platform][day]
	out := make([]ScheduleSlot, len(slots))
	for i, s := range slots {
		s.DayOfWeek = int(day)
		out[i] = s
	}
	return out
}

// DefaultOptimalSlots is the hardcoded fallback ranking for a platform.
func DefaultOptimalSlots(platform string) []OptimalSlot {
	return defaultOptimalSlots[platform]
}

// DefaultHour is the platform's standard posting hour, used by the
// spread strategy when no slot table applies.
func DefaultHour(platform string) int {
	if h, ok := defaultHours[platform]; ok {
		return h
	}
	return 12
}

// OccurrenceAfter returns the first time strictly after `after` that
// lands on the slot's weekday at the slot's hour, in after's location.
func OccurrenceAfter(dayOfWeek, hour int, after time.Time) time.Time {
	day := time.Date(after.Year(), after.Month(), after.Day(), hour, 0, 0, 0, after.Location())
	offset := (dayOfWeek - int(after.Weekday()) + 7) % 7
	t := day.AddDate(0, 0, offset)
	if !t.After(after) {
		t = t.AddDate(0, 0, 7)
	}
	return t
}
