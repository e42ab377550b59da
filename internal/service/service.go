package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slotcal-service/api"
	"slotcal-service/internal/config"
	"slotcal-service/internal/lock"
	"slotcal-service/internal/models"
	"slotcal-service/internal/schedule"
	"slotcal-service/pkg/response"
)

type Service struct {
	store   Store
	locker  lock.Locker
	intents Intents
	rules   schedule.Rules
	lockTTL time.Duration
	now     func() time.Time
}

func NewService(store Store, locker lock.Locker, intents Intents, cfg config.Booking) *Service {
	return &Service{
		store:   store,
		locker:  locker,
		intents: intents,
		rules: schedule.Rules{
			Granularity: cfg.Granularity,
			MinNotice:   cfg.MinNotice,
			MinDuration: cfg.MinDuration,
			MaxDuration: cfg.MaxDuration,
		},
		lockTTL: cfg.LockTTL,
		now:     time.Now,
	}
}

type Store interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)

	// Time slots
	ListSlotsByRange(ctx context.Context, tutorID string, from, to time.Time) ([]*models.TimeSlot, error)
	GetSlotsByIDs(ctx context.Context, ids []string) ([]*models.TimeSlot, error)
	BulkCreateSlots(ctx context.Context, tx *sql.Tx, tutorID string, slots []models.TimeSlot) (int64, error)
	BulkDeleteSlots(ctx context.Context, tx *sql.Tx, ids []string) (int64, error)
	SetSlotsAvailability(ctx context.Context, tx *sql.Tx, ids []string, available bool) error
	MarkSlotsBooked(ctx context.Context, tx *sql.Tx, ids []string) error

	// Meetings
	CreateMeetings(ctx context.Context, tx *sql.Tx, meetings []*models.Meeting) error
	ListMeetings(ctx context.Context, tutorID, studentID *string, from, to *time.Time) ([]*models.Meeting, error)
	GetMeetingsByIDs(ctx context.Context, ids []string) ([]*models.Meeting, error)
	UpdateMeetingsStatus(ctx context.Context, tx *sql.Tx, ids []string, status models.MeetingStatus) error

	// Daily summaries
	GetDailySummaries(ctx context.Context, tutorID string, from, to time.Time) ([]*models.DailySummary, error)
	RecalculateDailySummary(ctx context.Context, tutorID string, date time.Time) (*models.DailySummary, error)
}

type Intents interface {
	Put(ctx context.Context, payload any) (string, error)
	Take(ctx context.Context, token string, dst any) error
}

// #### time slots ####

func (s *Service) ListSlots(ctx context.Context, tutorID string, from, to time.Time, onlyAvailable *bool) ([]*api.SlotResponse, error) {
	const op = "service.ListSlots"

	slots, err := s.store.ListSlotsByRange(ctx, tutorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		if onlyAvailable != nil && slot.IsAvailable != *onlyAvailable {
			continue
		}
		result = append(result, &api.SlotResponse{
			ID:          slot.ID,
			TutorID:     slot.TutorID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: slot.IsAvailable,
		})
	}

	return result, nil
}

func (s *Service) BulkCreateSlots(ctx context.Context, req *api.BulkCreateRequest) (int, error) {
	const op = "service.BulkCreateSlots"

	step := int64(s.rules.Granularity / time.Second)

	slots := make([]models.TimeSlot, 0, len(req.Slots))
	for _, t := range req.Slots {
		// Off-grid starts would coexist with toggle-created rows covering
		// the same wall-clock time, so the grid is enforced on the way in.
		if t.StartTime.Unix()%step != 0 {
			return 0, fmt.Errorf("%s: %w", op, response.ErrBadRequest)
		}
		if !t.EndTime.Equal(t.StartTime.Add(s.rules.Granularity)) {
			return 0, fmt.Errorf("%s: %w", op, response.ErrBadRequest)
		}
		slots = append(slots, models.TimeSlot{StartTime: t.StartTime, EndTime: t.EndTime})
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	n, err := s.store.BulkCreateSlots(ctx, tx, req.TutorID, slots)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	s.recalcDays(ctx, req.TutorID, slotDays(slots))

	return int(n), nil
}

func (s *Service) BulkDeleteSlots(ctx context.Context, req *api.BulkDeleteRequest) (int, error) {
	const op = "service.BulkDeleteSlots"

	slots, err := s.store.GetSlotsByIDs(ctx, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	n, err := s.store.BulkDeleteSlots(ctx, tx, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	for _, slot := range slots {
		s.recalcDays(ctx, slot.TutorID, slotDays([]models.TimeSlot{*slot}))
	}

	return int(n), nil
}

// #### blocks & selection ####

func (s *Service) RangeBlocks(ctx context.Context, tutorID string, from, to time.Time) ([]*api.BlockResponse, error) {
	const op = "service.RangeBlocks"

	slots, err := s.store.ListSlotsByRange(ctx, tutorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks := schedule.AggregateBlocks(derefSlots(slots), s.now(), s.rules)

	result := make([]*api.BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		ids := make([]string, 0, len(b.Slots))
		for _, slot := range b.Slots {
			ids = append(ids, slot.ID)
		}
		result = append(result, &api.BlockResponse{
			Start:           b.Start,
			End:             b.End,
			DurationMinutes: int(b.Duration() / time.Minute),
			SlotIDs:         ids,
		})
	}

	return result, nil
}

func (s *Service) ClickSegment(ctx context.Context, req *api.ClickRequest) (*api.SelectionResponse, error) {
	const op = "service.ClickSegment"

	day := truncateToDate(req.Segment, req.Segment.Location())

	slots, err := s.store.ListSlotsByRange(ctx, req.TutorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks := schedule.AggregateBlocks(derefSlots(slots), s.now(), s.rules)

	var cur schedule.Selection
	if req.SelectionStart != nil && req.SelectionEnd != nil {
		cur = schedule.Selection{Start: *req.SelectionStart, End: *req.SelectionEnd}
	}

	next, err := schedule.Click(blocks, cur, req.Segment, s.now(), s.rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if next.IsZero() {
		return &api.SelectionResponse{}, nil
	}

	start, end := next.Start, next.End
	return &api.SelectionResponse{SelectionStart: &start, SelectionEnd: &end}, nil
}

// #### sessions ####

// CreateSession books every requested slot as one atomic multi-slot
// session. The full ID set goes into a single transaction; a slot that was
// taken (or deleted) between selection and submission fails the whole
// request with a booking conflict and the caller re-fetches blocks.
func (s *Service) CreateSession(ctx context.Context, req *api.CreateSessionRequest) (*api.SessionResponse, error) {
	const op = "service.CreateSession"

	if len(req.TimeSlotIDs) == 0 || req.StudentID == "" {
		return nil, fmt.Errorf("%s: %w", op, response.ErrBadRequest)
	}

	// The first read only locates the scope for the lock key. Availability
	// is decided by the re-read under the lock; anything this read sees can
	// be stale by the time the lock is granted.
	scopeSlots, err := s.store.GetSlotsByIDs(ctx, req.TimeSlotIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(scopeSlots) == 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
	}

	tutorID := scopeSlots[0].TutorID
	lockKey := fmt.Sprintf("booking:%s:%s", tutorID, schedule.DateKey(scopeSlots[0].StartTime))

	locked, err := s.locker.Lock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	slots, err := s.store.GetSlotsByIDs(ctx, req.TimeSlotIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(slots) != len(req.TimeSlotIDs) {
		return nil, fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
	}

	for i, slot := range slots {
		if !slot.IsAvailable {
			return nil, fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
		}
		if slot.TutorID != tutorID {
			return nil, fmt.Errorf("%s: %w", op, response.ErrInconsistentSelection)
		}
		if i > 0 && !slot.StartTime.Equal(slots[i-1].EndTime) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrInconsistentSelection)
		}
	}

	meetings := make([]*models.Meeting, 0, len(slots))
	slotIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		slotIDs = append(slotIDs, slot.ID)
		meetings = append(meetings, &models.Meeting{
			SlotID:    slot.ID,
			TutorID:   tutorID,
			StudentID: req.StudentID,
			Subject:   req.Subject,
			Notes:     req.Notes,
			Platform:  req.Platform,
			Status:    models.MeetingPending,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.store.CreateMeetings(ctx, tx, meetings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.MarkSlotsBooked(ctx, tx, slotIDs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	s.recalcDays(ctx, tutorID, meetingDays(meetings))

	sessions := schedule.AggregateSessions(derefMeetings(meetings), s.now())
	if len(sessions) != 1 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInconsistentSelection)
	}

	return sessionResponse(sessions[0]), nil
}

// DeferSession persists a booking intent for an unauthenticated caller.
// The intent is replayed exactly once after authentication.
func (s *Service) DeferSession(ctx context.Context, req *api.DeferSessionRequest) (string, error) {
	const op = "service.DeferSession"

	if len(req.TimeSlotIDs) == 0 {
		return "", fmt.Errorf("%s: %w", op, response.ErrBadRequest)
	}

	if !req.SelectionStart.IsZero() && !req.SelectionEnd.IsZero() {
		sel := schedule.Selection{Start: req.SelectionStart, End: req.SelectionEnd}
		if err := schedule.Proceed(sel, s.rules); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	token, err := s.intents.Put(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// ReplaySession consumes a deferred intent and submits it. The read
// deletes the intent first, so a failed submission is surfaced once and
// never retried from the same intent.
func (s *Service) ReplaySession(ctx context.Context, token, studentID string) (*api.SessionResponse, error) {
	const op = "service.ReplaySession"

	var req api.DeferSessionRequest
	if err := s.intents.Take(ctx, token, &req); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if studentID != "" {
		req.StudentID = studentID
	}

	// The slot set may have changed since the intent was captured. When the
	// intent carries its selection window, the covering slots are re-derived
	// from a fresh read instead of trusting the stored IDs.
	if !req.SelectionStart.IsZero() && !req.SelectionEnd.IsZero() {
		stored, err := s.store.GetSlotsByIDs(ctx, req.TimeSlotIDs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(stored) == 0 {
			return nil, fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
		}

		day := truncateToDate(req.SelectionStart, req.SelectionStart.Location())
		daySlots, err := s.store.ListSlotsByRange(ctx, stored[0].TutorID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		fresh, err := schedule.SessionSlots(derefSlots(daySlots), req.SelectionStart, req.SelectionEnd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		ids := make([]string, 0, len(fresh))
		for _, slot := range fresh {
			ids = append(ids, slot.ID)
		}
		req.TimeSlotIDs = ids
	}

	session, err := s.CreateSession(ctx, &req.CreateSessionRequest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return session, nil
}

func (s *Service) ListSessions(ctx context.Context, tutorID, studentID *string, from, to *time.Time) ([]*api.SessionResponse, error) {
	const op = "service.ListSessions"

	meetings, err := s.store.ListMeetings(ctx, tutorID, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sessions := schedule.AggregateSessions(derefMeetings(meetings), s.now())

	result := make([]*api.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, sessionResponse(session))
	}

	return result, nil
}

// CancelSession cancels the meeting links and frees their slots so the
// availability can be booked again.
func (s *Service) CancelSession(ctx context.Context, meetingIDs []string) error {
	const op = "service.CancelSession"

	meetings, err := s.store.GetMeetingsByIDs(ctx, meetingIDs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(meetings) == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	slotIDs := make([]string, 0, len(meetings))
	for _, m := range meetings {
		slotIDs = append(slotIDs, m.SlotID)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.store.UpdateMeetingsStatus(ctx, tx, meetingIDs, models.MeetingCancelled); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.SetSlotsAvailability(ctx, tx, slotIDs, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	s.recalcDays(ctx, meetings[0].TutorID, meetingDays(meetings))

	return nil
}

func (s *Service) ConfirmSession(ctx context.Context, meetingIDs []string) error {
	const op = "service.ConfirmSession"

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.store.UpdateMeetingsStatus(ctx, tx, meetingIDs, models.MeetingConfirmed); err != nil {
		if errors.Is(err, response.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// #### availability toggle ####

// BulkToggle flips every non-past, non-booked segment of a day/week/month
// scope to the target state. The diff is computed against a fresh read and
// applied as one transaction, so re-running the same toggle is a no-op.
func (s *Service) BulkToggle(ctx context.Context, req *api.ToggleRequest) (*api.ToggleResponse, error) {
	const op = "service.BulkToggle"

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrBadRequest)
	}

	rangeStart, rangeEnd, ok := schedule.ScopeRange(req.Scope, date)
	if !ok {
		return nil, fmt.Errorf("%s: invalid scope: %w", op, response.ErrBadRequest)
	}

	lockKey := fmt.Sprintf("toggle:%s:%s", req.TutorID, schedule.DateKey(rangeStart))

	locked, err := s.locker.Lock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	slots, err := s.store.ListSlotsByRange(ctx, req.TutorID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	meetings, err := s.store.ListMeetings(ctx, &req.TutorID, nil, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	diff := schedule.BulkToggleDiff(rangeStart, rangeEnd, req.MakeAvailable,
		derefSlots(slots), derefMeetings(meetings), s.now(), s.rules.Granularity)

	var created, deleted int64
	if !diff.Empty() {
		tx, err := s.store.BeginTx(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: begin tx: %w", op, err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		created, err = s.store.BulkCreateSlots(ctx, tx, req.TutorID, diff.Create)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		deleted, err = s.store.BulkDeleteSlots(ctx, tx, diff.DeleteIDs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("%s: commit: %w", op, err)
		}

		days := make(map[string]time.Time)
		for d := rangeStart; d.Before(rangeEnd); d = d.AddDate(0, 0, 1) {
			days[schedule.DateKey(d)] = d
		}
		s.recalcDays(ctx, req.TutorID, days)
	}

	// Re-fetch rather than patch: the reported active state always comes
	// from server truth.
	after, err := s.store.ListSlotsByRange(ctx, req.TutorID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.ToggleResponse{
		Created: int(created),
		Deleted: int(deleted),
		Active:  schedule.ScopeActive(derefSlots(after), s.now()),
	}, nil
}

func (s *Service) ScopeActive(ctx context.Context, tutorID, scope string, date time.Time) (bool, error) {
	const op = "service.ScopeActive"

	rangeStart, rangeEnd, ok := schedule.ScopeRange(scope, date)
	if !ok {
		return false, fmt.Errorf("%s: invalid scope: %w", op, response.ErrBadRequest)
	}

	slots, err := s.store.ListSlotsByRange(ctx, tutorID, rangeStart, rangeEnd)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return schedule.ScopeActive(derefSlots(slots), s.now()), nil
}

// #### daily summaries & calendar ####

func (s *Service) DailySummaries(ctx context.Context, tutorID string, from, to time.Time) ([]*api.SummaryResponse, error) {
	const op = "service.DailySummaries"

	summaries, err := s.store.GetDailySummaries(ctx, tutorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*api.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		result = append(result, &api.SummaryResponse{
			Date:              sum.Date.Format("2006-01-02"),
			HasAvailableSlots: sum.HasAvailableSlots,
			HasBookedSlots:    sum.HasBookedSlots,
		})
	}

	return result, nil
}

func (s *Service) RecalculateSummary(ctx context.Context, req *api.RecalculateRequest) (*api.SummaryResponse, error) {
	const op = "service.RecalculateSummary"

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date: %w", op, response.ErrBadRequest)
	}

	sum, err := s.store.RecalculateDailySummary(ctx, req.TutorID, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.SummaryResponse{
		Date:              sum.Date.Format("2006-01-02"),
		HasAvailableSlots: sum.HasAvailableSlots,
		HasBookedSlots:    sum.HasBookedSlots,
	}, nil
}

// MonthCalendar assembles the ISO-week-aligned display grid for a month
// from cached daily summaries. A day is clickable for booking flows only
// when it still has available slots and is not past.
func (s *Service) MonthCalendar(ctx context.Context, tutorID string, year int, month time.Month) ([]*api.CalendarDayResponse, error) {
	const op = "service.MonthCalendar"

	loc := s.now().Location()
	days := schedule.MonthGrid(year, month, loc)

	summaries, err := s.store.GetDailySummaries(ctx, tutorID, days[0], days[len(days)-1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byDate := make(map[string]*models.DailySummary, len(summaries))
	for _, sum := range summaries {
		byDate[sum.Date.Format("2006-01-02")] = sum
	}

	today := truncateToDate(s.now(), loc)

	result := make([]*api.CalendarDayResponse, 0, len(days))
	for _, day := range days {
		cell := &api.CalendarDayResponse{
			Date:    schedule.DateKey(day),
			InMonth: day.Month() == month,
		}
		if sum, ok := byDate[cell.Date]; ok {
			cell.HasAvailableSlots = sum.HasAvailableSlots
			cell.HasBookedSlots = sum.HasBookedSlots
		}
		cell.Clickable = cell.HasAvailableSlots && !day.Before(today)

		result = append(result, cell)
	}

	return result, nil
}

// #### helpers ####

// recalcDays refreshes the summary cache for every touched day. Failures
// here are non-fatal: the cache can always be rebuilt by an explicit
// recalculate call.
func (s *Service) recalcDays(ctx context.Context, tutorID string, days map[string]time.Time) {
	for _, day := range days {
		_, _ = s.store.RecalculateDailySummary(ctx, tutorID, day)
	}
}

func slotDays(slots []models.TimeSlot) map[string]time.Time {
	days := make(map[string]time.Time, len(slots))
	for _, slot := range slots {
		days[schedule.DateKey(slot.StartTime)] = slot.StartTime
	}
	return days
}

func meetingDays(meetings []*models.Meeting) map[string]time.Time {
	days := make(map[string]time.Time, len(meetings))
	for _, m := range meetings {
		days[schedule.DateKey(m.StartTime)] = m.StartTime
	}
	return days
}

func derefSlots(slots []*models.TimeSlot) []models.TimeSlot {
	result := make([]models.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *slot)
	}
	return result
}

func derefMeetings(meetings []*models.Meeting) []models.Meeting {
	result := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, *m)
	}
	return result
}

func sessionResponse(session schedule.Session) *api.SessionResponse {
	return &api.SessionResponse{
		Subject:    session.Subject,
		Notes:      session.Notes,
		Platform:   session.Platform,
		StudentID:  session.StudentID,
		TutorID:    session.TutorID,
		Status:     string(session.Status),
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		MeetingIDs: session.MeetingIDs,
		SlotIDs:    session.SlotIDs,
	}
}

// truncateToDate returns midnight of t's day in loc.
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
