package models

import "time"

type MeetingStatus string

const (
	MeetingPending   MeetingStatus = "pending"
	MeetingConfirmed MeetingStatus = "confirmed"
	MeetingCancelled MeetingStatus = "canceled"
	// MeetingCompleted is derived at read time (end < now while
	// pending/confirmed). Never stored.
	MeetingCompleted MeetingStatus = "completed"
)

// TimeSlot is the atomic bookable unit: exactly one granularity step wide.
// A stored row is an availability record; absence means unavailable. Rows
// consumed by a booking carry IsAvailable=false until the booking is
// cancelled and the slot is freed.
type TimeSlot struct {
	ID          string    `db:"id"`
	TutorID     string    `db:"tutor_id"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	IsAvailable bool      `db:"is_available"`
}

// Meeting is one slot-meeting link record. A user-facing Session spans one
// or more contiguous links sharing subject, platform and student.
type Meeting struct {
	ID        string        `db:"id"`
	SlotID    string        `db:"time_slot_id"`
	TutorID   string        `db:"tutor_id"`
	StudentID string        `db:"student_id"`
	Subject   string        `db:"subject"`
	Notes     string        `db:"notes"`
	Platform  string        `db:"platform"`
	Status    MeetingStatus `db:"status"`
	StartTime time.Time     `db:"start_time"`
	EndTime   time.Time     `db:"end_time"`
}

// EffectiveStatus derives "completed" without ever persisting it.
func (m *Meeting) EffectiveStatus(now time.Time) MeetingStatus {
	if (m.Status == MeetingPending || m.Status == MeetingConfirmed) && m.EndTime.Before(now) {
		return MeetingCompleted
	}
	return m.Status
}

// DailySummary caches per-day booleans so calendars render without a full
// slot fetch per visible day.
type DailySummary struct {
	TutorID           string    `db:"tutor_id"`
	Date              time.Time `db:"date"`
	HasAvailableSlots bool      `db:"has_available_slots"`
	HasBookedSlots    bool      `db:"has_booked_slots"`
}
