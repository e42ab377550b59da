package schedule

import (
	"time"

	"slotcal-service/pkg/response"
)

// Selection is a half-open range [Start, End) nested inside exactly one
// block. The zero value means nothing is selected.
type Selection struct {
	Start time.Time
	End   time.Time
}

func (s Selection) IsZero() bool {
	return s.Start.IsZero()
}

func (s Selection) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Click applies one "segment clicked" transition. The segment must be
// grid-aligned; blocks are the aggregated blocks of the segment's day.
//
// Clicking the current selection start clears the selection. Clicking at or
// before the selection start restarts it there and proposes the minimum
// valid duration, clamped to the block end. Clicking after the start
// extends the selection, clamped to the block end and MaxDuration; an
// extension outside the block holding the start is rejected rather than
// clamped, so a selection can never span a gap.
func Click(blocks []Block, cur Selection, segment, now time.Time, r Rules) (Selection, error) {
	if segment.Before(now.Add(r.MinNotice)) {
		return cur, response.ErrNoticeTooShort
	}

	block, ok := BlockContaining(blocks, segment)
	if !ok {
		return cur, response.ErrSegmentUnavailable
	}

	if !cur.IsZero() && segment.Equal(cur.Start) {
		return Selection{}, nil
	}

	if cur.IsZero() || segment.Before(cur.Start) {
		end := segment.Add(r.MinDuration)
		if end.After(block.End) {
			end = block.End
		}
		return Selection{Start: segment, End: end}, nil
	}

	// Extending: the selection stays inside the block holding its start.
	containing, ok := BlockContaining(blocks, cur.Start)
	if !ok {
		return cur, response.ErrSegmentUnavailable
	}
	if !containing.Contains(segment) {
		return cur, response.ErrCannotSpanBlocks
	}

	end := segment.Add(r.Granularity)
	if max := cur.Start.Add(r.MaxDuration); end.After(max) {
		end = max
	}
	if end.After(containing.End) {
		end = containing.End
	}

	return Selection{Start: cur.Start, End: end}, nil
}

// Proceed validates a selection for confirmation.
func Proceed(cur Selection, r Rules) error {
	if cur.IsZero() || cur.Duration() < r.MinDuration {
		return response.ErrSelectionTooShort
	}
	return nil
}
