package schedule

import (
	"sort"
	"time"

	"slotcal-service/internal/models"
)

// Session is the user-facing booking: one or more contiguous slot-meeting
// links sharing subject, platform and student, presented as a single range.
type Session struct {
	Subject    string
	Notes      string
	Platform   string
	StudentID  string
	TutorID    string
	Status     models.MeetingStatus
	StartTime  time.Time
	EndTime    time.Time
	MeetingIDs []string
	SlotIDs    []string
}

// AggregateSessions groups flat slot-meeting link records into sessions.
// The store persists one link per slot even for a two-hour booking, so the
// read path re-derives the run every time the list changes.
//
// Grouping sorts first, so input order does not matter. A link extends the
// current run only when it starts exactly where the run ends and carries
// the same subject, platform and student; anything else starts a new
// session. Status comes from the first link, with "completed" derived from
// now.
func AggregateSessions(links []models.Meeting, now time.Time) []Session {
	if len(links) == 0 {
		return nil
	}

	sorted := make([]models.Meeting, len(links))
	copy(sorted, links)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var sessions []Session
	cur := newSession(sorted[0])
	last := sorted[0]
	for _, m := range sorted[1:] {
		if m.StartTime.Equal(last.EndTime) &&
			m.Subject == last.Subject &&
			m.Platform == last.Platform &&
			m.StudentID == last.StudentID {
			cur.EndTime = m.EndTime
			cur.MeetingIDs = append(cur.MeetingIDs, m.ID)
			cur.SlotIDs = append(cur.SlotIDs, m.SlotID)
			last = m
			continue
		}
		sessions = append(sessions, cur)
		cur = newSession(m)
		last = m
	}
	sessions = append(sessions, cur)

	for i := range sessions {
		sessions[i].Status = effectiveStatus(sessions[i], now)
	}

	return sessions
}

func newSession(m models.Meeting) Session {
	return Session{
		Subject:    m.Subject,
		Notes:      m.Notes,
		Platform:   m.Platform,
		StudentID:  m.StudentID,
		TutorID:    m.TutorID,
		Status:     m.Status,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		MeetingIDs: []string{m.ID},
		SlotIDs:    []string{m.SlotID},
	}
}

func effectiveStatus(s Session, now time.Time) models.MeetingStatus {
	if (s.Status == models.MeetingPending || s.Status == models.MeetingConfirmed) && s.EndTime.Before(now) {
		return models.MeetingCompleted
	}
	return s.Status
}
