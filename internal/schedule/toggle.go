package schedule

import (
	"time"

	"slotcal-service/internal/models"
)

// ToggleDiff is the minimal pair of bulk store calls needed to flip a scope
// to a target availability state. Create entries carry times only; the
// store assigns IDs.
type ToggleDiff struct {
	Create    []models.TimeSlot
	DeleteIDs []string
}

func (d ToggleDiff) Empty() bool {
	return len(d.Create) == 0 && len(d.DeleteIDs) == 0
}

// BulkToggleDiff walks every grid-aligned segment of [rangeStart, rangeEnd)
// and computes what must change to reach makeAvailable.
//
// Past segments and segments occupied by a non-canceled meeting are never
// touched; booked time is freed through cancellation, not toggling. A row
// with IsAvailable=false counts as absent (the absence convention), so
// activating over one re-creates it; the store upserts on (tutor, start) to
// keep that single-row. Running the same toggle twice yields an empty
// second diff.
func BulkToggleDiff(rangeStart, rangeEnd time.Time, makeAvailable bool, slots []models.TimeSlot, meetings []models.Meeting, now time.Time, granularity time.Duration) ToggleDiff {
	existing := make(map[int64]models.TimeSlot, len(slots))
	for _, s := range slots {
		existing[s.StartTime.Unix()] = s
	}

	occupied := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if m.Status != models.MeetingCancelled {
			occupied = append(occupied, m)
		}
	}

	var diff ToggleDiff
	for segStart := rangeStart; segStart.Before(rangeEnd); segStart = segStart.Add(granularity) {
		if segStart.Before(now) {
			continue
		}
		segEnd := segStart.Add(granularity)
		if overlapsMeeting(segStart, segEnd, occupied) {
			continue
		}

		slot, ok := existing[segStart.Unix()]
		switch {
		case makeAvailable && (!ok || !slot.IsAvailable):
			diff.Create = append(diff.Create, models.TimeSlot{StartTime: segStart, EndTime: segEnd})
		case !makeAvailable && ok && slot.IsAvailable:
			diff.DeleteIDs = append(diff.DeleteIDs, slot.ID)
		}
	}

	return diff
}

func overlapsMeeting(start, end time.Time, meetings []models.Meeting) bool {
	for _, m := range meetings {
		// Half-open: [start,end) overlaps [m.Start,m.End) iff start < m.End && m.Start < end.
		if start.Before(m.EndTime) && m.StartTime.Before(end) {
			return true
		}
	}
	return false
}

// ScopeActive reports whether a scope currently holds at least one
// available, non-past slot. Used to decide whether a toggle activates or
// deactivates; booked segments do not count either way.
func ScopeActive(slots []models.TimeSlot, now time.Time) bool {
	for _, s := range slots {
		if s.IsAvailable && !s.StartTime.Before(now) {
			return true
		}
	}
	return false
}
