package schedule

import (
	"time"

	"slotcal-service/internal/models"
)

const dateLayout = "2006-01-02"

// DateKey buckets a timestamp by its local calendar date.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// MonthGrid enumerates the ISO-week-aligned (Monday-first) display grid for
// a month: leading days back to the Monday on or before the 1st, every day
// of the month, and trailing days out to the final Sunday. All entries are
// midnights in loc.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -mondayOffset(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayOffset(last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// mondayOffset is the number of days since the most recent Monday.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// BucketSlots partitions slots per local calendar date of their start time.
func BucketSlots(slots []models.TimeSlot, loc *time.Location) map[string][]models.TimeSlot {
	buckets := make(map[string][]models.TimeSlot)
	for _, s := range slots {
		key := DateKey(s.StartTime.In(loc))
		buckets[key] = append(buckets[key], s)
	}
	return buckets
}

// ScopeRange resolves a named scope to its half-open [start, end) range:
// the day itself, the ISO week containing it, or the calendar month.
func ScopeRange(scope string, date time.Time) (time.Time, time.Time, bool) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch scope {
	case "day":
		return day, day.AddDate(0, 0, 1), true
	case "week":
		start := day.AddDate(0, 0, -mondayOffset(day.Weekday()))
		return start, start.AddDate(0, 0, 7), true
	case "month":
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, 0), true
	}

	return time.Time{}, time.Time{}, false
}
