package schedule

import (
	"sort"
	"time"

	"slotcal-service/internal/models"
)

// Rules are the grid parameters shared by aggregation, selection and the
// bulk toggle. Granularity divides every duration in here.
type Rules struct {
	Granularity time.Duration
	MinNotice   time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
}

// Block is a maximal run of contiguous available slots within one query
// scope. Derived, never persisted.
type Block struct {
	Start time.Time
	End   time.Time
	Slots []models.TimeSlot
}

func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Contains reports whether a segment starting at t lies inside the block.
// Intervals are half-open: [Start, End).
func (b Block) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// AggregateBlocks merges the available slots of a scope into maximal
// contiguous blocks, then drops blocks shorter than MinDuration and blocks
// ending inside the notice window.
//
// A slot whose start does not exactly match the running block's end starts
// a new block. Overlapping or duplicate records therefore never merge; the
// earlier block is closed and kept, which never silently drops data.
func AggregateBlocks(slots []models.TimeSlot, now time.Time, r Rules) []Block {
	avail := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsAvailable {
			avail = append(avail, s)
		}
	}
	if len(avail) == 0 {
		return nil
	}

	sort.Slice(avail, func(i, j int) bool {
		return avail[i].StartTime.Before(avail[j].StartTime)
	})

	merged := make([]Block, 0, len(avail))
	cur := Block{Start: avail[0].StartTime, End: avail[0].EndTime, Slots: []models.TimeSlot{avail[0]}}
	for _, s := range avail[1:] {
		if s.StartTime.Equal(cur.End) {
			cur.End = s.EndTime
			cur.Slots = append(cur.Slots, s)
			continue
		}
		merged = append(merged, cur)
		cur = Block{Start: s.StartTime, End: s.EndTime, Slots: []models.TimeSlot{s}}
	}
	merged = append(merged, cur)

	cutoff := now.Add(r.MinNotice)

	blocks := make([]Block, 0, len(merged))
	for _, b := range merged {
		if b.Duration() < r.MinDuration {
			continue
		}
		if !b.End.After(cutoff) {
			continue
		}
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 {
		return nil
	}

	return blocks
}

// BlockContaining finds the block holding a segment start, if any.
func BlockContaining(blocks []Block, segment time.Time) (Block, bool) {
	for _, b := range blocks {
		if b.Contains(segment) {
			return b, true
		}
	}
	return Block{}, false
}
