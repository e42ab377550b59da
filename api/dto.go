package api

import "time"

type SlotResponse struct {
	ID          string    `json:"id"`
	TutorID     string    `json:"tutor"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type SlotTimes struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BulkCreateRequest struct {
	TutorID string      `json:"tutor"`
	Slots   []SlotTimes `json:"slots"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BlockResponse struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	SlotIDs         []string  `json:"slot_ids"`
}

type ClickRequest struct {
	TutorID        string     `json:"tutor"`
	Segment        time.Time  `json:"segment"`
	SelectionStart *time.Time `json:"selection_start,omitempty"`
	SelectionEnd   *time.Time `json:"selection_end,omitempty"`
}

type SelectionResponse struct {
	SelectionStart *time.Time `json:"selection_start,omitempty"`
	SelectionEnd   *time.Time `json:"selection_end,omitempty"`
}

type CreateSessionRequest struct {
	TimeSlotIDs []string `json:"time_slot_ids"`
	StudentID   string   `json:"student"`
	Subject     string   `json:"subject"`
	Notes       string   `json:"notes"`
	Platform    string   `json:"platform"`
}

type SessionResponse struct {
	Subject    string    `json:"subject"`
	Notes      string    `json:"notes"`
	Platform   string    `json:"platform"`
	StudentID  string    `json:"student"`
	TutorID    string    `json:"tutor"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	MeetingIDs []string  `json:"meeting_ids"`
	SlotIDs    []string  `json:"slot_ids"`
}

type DeferSessionRequest struct {
	CreateSessionRequest
	SelectionStart time.Time `json:"selection_start"`
	SelectionEnd   time.Time `json:"selection_end"`
}

type ReplaySessionRequest struct {
	IntentToken string `json:"intent_token"`
}

type MeetingActionRequest struct {
	MeetingIDs []string `json:"meeting_ids"`
}

type ToggleRequest struct {
	TutorID       string `json:"tutor"`
	Date          string `json:"date"`
	Scope         string `json:"scope"`
	MakeAvailable bool   `json:"make_available"`
}

type ToggleResponse struct {
	Created int  `json:"created"`
	Deleted int  `json:"deleted"`
	Active  bool `json:"active"`
}

type SummaryResponse struct {
	Date              string `json:"date"`
	HasAvailableSlots bool   `json:"has_available_slots"`
	HasBookedSlots    bool   `json:"has_booked_slots"`
}

type RecalculateRequest struct {
	TutorID string `json:"tutor"`
	Date    string `json:"date"`
}

type CalendarDayResponse struct {
	Date              string `json:"date"`
	InMonth           bool   `json:"in_month"`
	Clickable         bool   `json:"clickable"`
	HasAvailableSlots bool   `json:"has_available_slots"`
	HasBookedSlots    bool   `json:"has_booked_slots"`
}
