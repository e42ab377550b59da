package schedule

import (
	"sort"
	"time"

	"slotcal-service/internal/models"
	"slotcal-service/pkg/response"
)

// SessionSlots picks the available slots covering a confirmed selection
// [start, end). The result is time-ordered and must fully tile the range;
// any gap or missing edge means the client worked from stale blocks and the
// caller gets ErrInconsistentSelection instead of a partial booking.
func SessionSlots(slots []models.TimeSlot, start, end time.Time) ([]models.TimeSlot, error) {
	picked := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !s.IsAvailable {
			continue
		}
		if s.StartTime.Before(start) || !s.StartTime.Before(end) {
			continue
		}
		picked = append(picked, s)
	}

	if len(picked) == 0 {
		return nil, response.ErrInconsistentSelection
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].StartTime.Before(picked[j].StartTime)
	})

	if !picked[0].StartTime.Equal(start) || !picked[len(picked)-1].EndTime.Equal(end) {
		return nil, response.ErrInconsistentSelection
	}
	for i := 1; i < len(picked); i++ {
		if !picked[i].StartTime.Equal(picked[i-1].EndTime) {
			return nil, response.ErrInconsistentSelection
		}
	}

	return picked, nil
}
