package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"slotcal-service/api"
	"slotcal-service/internal/config"
	"slotcal-service/internal/models"
	"slotcal-service/pkg/response"
)

// memDriver backs the fake store's transactions so the write paths can run
// end to end. Begin/Commit/Rollback are no-ops; the fake store keeps its
// state in memory and ignores the handle.
type memDriver struct{}

func (memDriver) Open(string) (driver.Conn, error) { return memConn{}, nil }

type memConn struct{}

func (memConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (memConn) Close() error                        { return nil }
func (memConn) Begin() (driver.Tx, error)           { return memTx{}, nil }

type memTx struct{}

func (memTx) Commit() error   { return nil }
func (memTx) Rollback() error { return nil }

func init() {
	sql.Register("memtx", memDriver{})
}

var testBooking = config.Booking{
	Granularity: 30 * time.Minute,
	MinNotice:   20 * time.Minute,
	MinDuration: time.Hour,
	MaxDuration: 4 * time.Hour,
	LockTTL:     10 * time.Second,
}

type fakeStore struct {
	slots     []*models.TimeSlot
	meetings  []*models.Meeting
	summaries []*models.DailySummary

	db     *sql.DB
	nextID int
}

func (f *fakeStore) BeginTx(ctx context.Context) (*sql.Tx, error) {
	if f.db == nil {
		db, err := sql.Open("memtx", "")
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	return f.db.BeginTx(ctx, nil)
}

func (f *fakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeStore) ListSlotsByRange(ctx context.Context, tutorID string, from, to time.Time) ([]*models.TimeSlot, error) {
	var result []*models.TimeSlot
	for _, slot := range f.slots {
		if slot.TutorID != tutorID {
			continue
		}
		if slot.StartTime.Before(from) || !slot.StartTime.Before(to) {
			continue
		}
		result = append(result, slot)
	}
	return result, nil
}

func (f *fakeStore) GetSlotsByIDs(ctx context.Context, ids []string) ([]*models.TimeSlot, error) {
	var result []*models.TimeSlot
	for _, id := range ids {
		for _, slot := range f.slots {
			if slot.ID == id {
				result = append(result, slot)
			}
		}
	}
	return result, nil
}

func (f *fakeStore) BulkCreateSlots(ctx context.Context, tx *sql.Tx, tutorID string, slots []models.TimeSlot) (int64, error) {
	var n int64
	for _, slot := range slots {
		f.slots = append(f.slots, &models.TimeSlot{
			ID:          f.newID("s"),
			TutorID:     tutorID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: true,
		})
		n++
	}
	return n, nil
}

func (f *fakeStore) BulkDeleteSlots(ctx context.Context, tx *sql.Tx, ids []string) (int64, error) {
	var n int64
	kept := f.slots[:0]
	for _, slot := range f.slots {
		deleted := false
		for _, id := range ids {
			if slot.ID == id && slot.IsAvailable {
				deleted = true
				break
			}
		}
		if deleted {
			n++
			continue
		}
		kept = append(kept, slot)
	}
	f.slots = kept
	return n, nil
}

func (f *fakeStore) SetSlotsAvailability(ctx context.Context, tx *sql.Tx, ids []string, available bool) error {
	for _, id := range ids {
		for _, slot := range f.slots {
			if slot.ID == id {
				slot.IsAvailable = available
			}
		}
	}
	return nil
}

func (f *fakeStore) MarkSlotsBooked(ctx context.Context, tx *sql.Tx, ids []string) error {
	var n int
	for _, id := range ids {
		for _, slot := range f.slots {
			if slot.ID == id && slot.IsAvailable {
				slot.IsAvailable = false
				n++
			}
		}
	}
	if n != len(ids) {
		return response.ErrBookingConflict
	}
	return nil
}

func (f *fakeStore) CreateMeetings(ctx context.Context, tx *sql.Tx, meetings []*models.Meeting) error {
	for _, m := range meetings {
		m.ID = f.newID("m")
		stored := *m
		f.meetings = append(f.meetings, &stored)
	}
	return nil
}

func (f *fakeStore) ListMeetings(ctx context.Context, tutorID, studentID *string, from, to *time.Time) ([]*models.Meeting, error) {
	var result []*models.Meeting
	for _, m := range f.meetings {
		if tutorID != nil && m.TutorID != *tutorID {
			continue
		}
		if studentID != nil && m.StudentID != *studentID {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeStore) GetMeetingsByIDs(ctx context.Context, ids []string) ([]*models.Meeting, error) {
	var result []*models.Meeting
	for _, id := range ids {
		for _, m := range f.meetings {
			if m.ID == id {
				result = append(result, m)
			}
		}
	}
	return result, nil
}

func (f *fakeStore) UpdateMeetingsStatus(ctx context.Context, tx *sql.Tx, ids []string, status models.MeetingStatus) error {
	var n int
	for _, id := range ids {
		for _, m := range f.meetings {
			if m.ID == id {
				m.Status = status
				n++
			}
		}
	}
	if n == 0 {
		return response.ErrNotFound
	}
	return nil
}

func (f *fakeStore) GetDailySummaries(ctx context.Context, tutorID string, from, to time.Time) ([]*models.DailySummary, error) {
	var result []*models.DailySummary
	for _, sum := range f.summaries {
		if sum.TutorID != tutorID {
			continue
		}
		result = append(result, sum)
	}
	return result, nil
}

func (f *fakeStore) RecalculateDailySummary(ctx context.Context, tutorID string, date time.Time) (*models.DailySummary, error) {
	return &models.DailySummary{TutorID: tutorID, Date: date}, nil
}

type fakeLocker struct {
	denied bool
	onLock func()
}

func (f *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if f.denied {
		return false, nil
	}
	if f.onLock != nil {
		f.onLock()
	}
	return true, nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key string) error {
	return nil
}

type fakeIntents struct {
	data map[string][]byte
	next int
}

func (f *fakeIntents) Put(ctx context.Context, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.next++
	token := fmt.Sprintf("token-%d", f.next)
	f.data[token] = raw
	return token, nil
}

func (f *fakeIntents) Take(ctx context.Context, token string, dst any) error {
	raw, ok := f.data[token]
	if !ok {
		return response.ErrNotFound
	}
	delete(f.data, token)
	return json.Unmarshal(raw, dst)
}

var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	s := NewService(store, &fakeLocker{}, &fakeIntents{}, testBooking)
	s.now = func() time.Time { return testNow }
	return s
}

func storedSlot(id, tutorID string, start time.Time, available bool) *models.TimeSlot {
	return &models.TimeSlot{
		ID:          id,
		TutorID:     tutorID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		IsAvailable: available,
	}
}

func TestListSlotsOnlyAvailable(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), false),
	}}
	s := newTestService(store)

	onlyAvailable := true
	slots, err := s.ListSlots(context.Background(), "t1", day, day.AddDate(0, 0, 1), &onlyAvailable)
	if err != nil {
		t.Fatalf("ListSlots() error = %v", err)
	}
	if len(slots) != 1 || slots[0].ID != "a" {
		t.Fatalf("ListSlots() = %+v, want single available slot a", slots)
	}
}

func TestRangeBlocksMergesAdjacentSlots(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
		storedSlot("c", "t1", day.Add(11*time.Hour), true),
		storedSlot("d", "t1", day.Add(15*time.Hour), true),
	}}
	s := newTestService(store)

	blocks, err := s.RangeBlocks(context.Background(), "t1", day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("RangeBlocks() error = %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("RangeBlocks() returned %d blocks, want 1 (isolated slot is below min duration)", len(blocks))
	}
	if blocks[0].DurationMinutes != 90 {
		t.Errorf("block duration = %d minutes, want 90", blocks[0].DurationMinutes)
	}
	if len(blocks[0].SlotIDs) != 3 {
		t.Errorf("block slot ids = %v, want 3 ids", blocks[0].SlotIDs)
	}
}

func TestClickSegmentProposesMinimumSelection(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
		storedSlot("c", "t1", day.Add(11*time.Hour), true),
		storedSlot("d", "t1", day.Add(11*time.Hour+30*time.Minute), true),
	}}
	s := newTestService(store)

	sel, err := s.ClickSegment(context.Background(), &api.ClickRequest{
		TutorID: "t1",
		Segment: day.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("ClickSegment() error = %v", err)
	}
	if sel.SelectionStart == nil || sel.SelectionEnd == nil {
		t.Fatalf("ClickSegment() = %+v, want proposed selection", sel)
	}
	if !sel.SelectionStart.Equal(day.Add(10 * time.Hour)) {
		t.Errorf("selection start = %v, want 10:00", sel.SelectionStart)
	}
	if !sel.SelectionEnd.Equal(day.Add(11 * time.Hour)) {
		t.Errorf("selection end = %v, want 11:00", sel.SelectionEnd)
	}
}

func TestClickSegmentOutsideBlocks(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
	}}
	s := newTestService(store)

	_, err := s.ClickSegment(context.Background(), &api.ClickRequest{
		TutorID: "t1",
		Segment: day.Add(15 * time.Hour),
	})
	if !errors.Is(err, response.ErrSegmentUnavailable) {
		t.Fatalf("ClickSegment() error = %v, want ErrSegmentUnavailable", err)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), false),
		storedSlot("c", "t1", day.Add(12*time.Hour), true),
	}}
	s := newTestService(store)

	cases := []struct {
		name string
		req  api.CreateSessionRequest
		want error
	}{
		{
			name: "no slots",
			req:  api.CreateSessionRequest{StudentID: "stu"},
			want: response.ErrBadRequest,
		},
		{
			name: "unknown slot id",
			req:  api.CreateSessionRequest{TimeSlotIDs: []string{"a", "missing"}, StudentID: "stu"},
			want: response.ErrBookingConflict,
		},
		{
			name: "booked slot",
			req:  api.CreateSessionRequest{TimeSlotIDs: []string{"a", "b"}, StudentID: "stu"},
			want: response.ErrBookingConflict,
		},
		{
			name: "gap between slots",
			req:  api.CreateSessionRequest{TimeSlotIDs: []string{"a", "c"}, StudentID: "stu"},
			want: response.ErrInconsistentSelection,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateSession(context.Background(), &tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("CreateSession() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCreateSessionLocked(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
	}}
	s := NewService(store, &fakeLocker{denied: true}, &fakeIntents{}, testBooking)
	s.now = func() time.Time { return testNow }

	_, err := s.CreateSession(context.Background(), &api.CreateSessionRequest{
		TimeSlotIDs: []string{"a"},
		StudentID:   "stu",
	})
	if !errors.Is(err, response.ErrLocked) {
		t.Fatalf("CreateSession() error = %v, want ErrLocked", err)
	}
}

func TestCreateSessionBooksContiguousSlots(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
	}}
	s := newTestService(store)

	session, err := s.CreateSession(context.Background(), &api.CreateSessionRequest{
		TimeSlotIDs: []string{"a", "b"},
		StudentID:   "stu",
		Subject:     "math",
	})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if session.Status != string(models.MeetingPending) {
		t.Errorf("session status = %q, want pending", session.Status)
	}
	if !session.StartTime.Equal(day.Add(10*time.Hour)) || !session.EndTime.Equal(day.Add(11*time.Hour)) {
		t.Errorf("session range = %v..%v, want 10:00..11:00", session.StartTime, session.EndTime)
	}
	if len(session.MeetingIDs) != 2 {
		t.Errorf("session meeting ids = %v, want one link per slot", session.MeetingIDs)
	}

	if len(store.meetings) != 2 {
		t.Fatalf("store holds %d meetings, want 2", len(store.meetings))
	}
	for _, slot := range store.slots {
		if slot.IsAvailable {
			t.Errorf("slot %s still available after booking", slot.ID)
		}
	}
}

func TestCreateSessionConflictAfterLock(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
	}}

	// A competing booking finishes in the window between the first read and
	// the lock grant; the re-read under the lock must catch it.
	locker := &fakeLocker{onLock: func() {
		for _, slot := range store.slots {
			slot.IsAvailable = false
		}
	}}

	s := NewService(store, locker, &fakeIntents{}, testBooking)
	s.now = func() time.Time { return testNow }

	_, err := s.CreateSession(context.Background(), &api.CreateSessionRequest{
		TimeSlotIDs: []string{"a", "b"},
		StudentID:   "stu",
	})
	if !errors.Is(err, response.ErrBookingConflict) {
		t.Fatalf("CreateSession() error = %v, want ErrBookingConflict", err)
	}
	if len(store.meetings) != 0 {
		t.Fatalf("store holds %d meetings after conflict, want none", len(store.meetings))
	}
}

func TestReplaySessionBooksDeferredIntent(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(10*time.Hour), true),
		storedSlot("b", "t1", day.Add(10*time.Hour+30*time.Minute), true),
	}}
	s := newTestService(store)

	token, err := s.DeferSession(context.Background(), &api.DeferSessionRequest{
		CreateSessionRequest: api.CreateSessionRequest{
			TimeSlotIDs: []string{"a", "b"},
			Subject:     "math",
		},
		SelectionStart: day.Add(10 * time.Hour),
		SelectionEnd:   day.Add(11 * time.Hour),
	})
	if err != nil {
		t.Fatalf("DeferSession() error = %v", err)
	}

	session, err := s.ReplaySession(context.Background(), token, "stu")
	if err != nil {
		t.Fatalf("ReplaySession() error = %v", err)
	}

	if session.StudentID != "stu" {
		t.Errorf("session student = %q, want the authenticated caller", session.StudentID)
	}
	if len(session.MeetingIDs) != 2 {
		t.Errorf("session meeting ids = %v, want 2 links", session.MeetingIDs)
	}
	for _, slot := range store.slots {
		if slot.IsAvailable {
			t.Errorf("slot %s still available after replay", slot.ID)
		}
	}

	if _, err := s.ReplaySession(context.Background(), token, "stu"); !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("second replay error = %v, want ErrNotFound", err)
	}
}

func TestCancelSessionFreesSlots(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{
		slots: []*models.TimeSlot{
			storedSlot("a", "t1", day.Add(10*time.Hour), false),
		},
		meetings: []*models.Meeting{{
			ID: "m1", SlotID: "a", TutorID: "t1", StudentID: "stu",
			Status:    models.MeetingPending,
			StartTime: day.Add(10 * time.Hour), EndTime: day.Add(10*time.Hour + 30*time.Minute),
		}},
	}
	s := newTestService(store)

	if err := s.CancelSession(context.Background(), []string{"m1"}); err != nil {
		t.Fatalf("CancelSession() error = %v", err)
	}

	if !store.slots[0].IsAvailable {
		t.Error("slot not freed by cancellation")
	}
	if store.meetings[0].Status != models.MeetingCancelled {
		t.Errorf("meeting status = %q, want canceled", store.meetings[0].Status)
	}
}

func TestBulkCreateSlotsRejectsOffGridStart(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	s := newTestService(&fakeStore{})

	_, err := s.BulkCreateSlots(context.Background(), &api.BulkCreateRequest{
		TutorID: "t1",
		Slots: []api.SlotTimes{{
			StartTime: day.Add(10*time.Hour + 15*time.Minute),
			EndTime:   day.Add(10*time.Hour + 45*time.Minute),
		}},
	})
	if !errors.Is(err, response.ErrBadRequest) {
		t.Fatalf("BulkCreateSlots() error = %v, want ErrBadRequest for off-grid start", err)
	}
}

func TestBulkCreateSlotsAligned(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	s := newTestService(store)

	created, err := s.BulkCreateSlots(context.Background(), &api.BulkCreateRequest{
		TutorID: "t1",
		Slots: []api.SlotTimes{
			{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(10*time.Hour + 30*time.Minute)},
			{StartTime: day.Add(10*time.Hour + 30*time.Minute), EndTime: day.Add(11 * time.Hour)},
		},
	})
	if err != nil {
		t.Fatalf("BulkCreateSlots() error = %v", err)
	}
	if created != 2 || len(store.slots) != 2 {
		t.Fatalf("created = %d, stored = %d, want 2 and 2", created, len(store.slots))
	}
}

func TestDeferSessionRoundTrip(t *testing.T) {
	intents := &fakeIntents{}
	s := NewService(&fakeStore{}, &fakeLocker{}, intents, testBooking)
	s.now = func() time.Time { return testNow }

	req := &api.DeferSessionRequest{
		CreateSessionRequest: api.CreateSessionRequest{
			TimeSlotIDs: []string{"a", "b"},
			Subject:     "math",
		},
	}

	token, err := s.DeferSession(context.Background(), req)
	if err != nil {
		t.Fatalf("DeferSession() error = %v", err)
	}
	if token == "" {
		t.Fatal("DeferSession() returned empty token")
	}

	var stored api.DeferSessionRequest
	if err := intents.Take(context.Background(), token, &stored); err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if len(stored.TimeSlotIDs) != 2 || stored.Subject != "math" {
		t.Fatalf("stored intent = %+v, want original request back", stored)
	}
}

func TestDeferSessionRejectsEmpty(t *testing.T) {
	s := newTestService(&fakeStore{})

	_, err := s.DeferSession(context.Background(), &api.DeferSessionRequest{})
	if !errors.Is(err, response.ErrBadRequest) {
		t.Fatalf("DeferSession() error = %v, want ErrBadRequest", err)
	}
}

func TestDeferSessionSelectionTooShort(t *testing.T) {
	s := newTestService(&fakeStore{})

	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	_, err := s.DeferSession(context.Background(), &api.DeferSessionRequest{
		CreateSessionRequest: api.CreateSessionRequest{TimeSlotIDs: []string{"a"}},
		SelectionStart:       day.Add(9 * time.Hour),
		SelectionEnd:         day.Add(9*time.Hour + 30*time.Minute),
	})
	if !errors.Is(err, response.ErrSelectionTooShort) {
		t.Fatalf("DeferSession() error = %v, want ErrSelectionTooShort", err)
	}
}

func TestReplaySessionStaleSelection(t *testing.T) {
	day := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	// The 9:30 slot disappeared between defer and replay, so the stored
	// selection window is no longer covered.
	store := &fakeStore{slots: []*models.TimeSlot{
		storedSlot("a", "t1", day.Add(9*time.Hour), true),
		storedSlot("c", "t1", day.Add(10*time.Hour), true),
	}}
	s := newTestService(store)

	token, err := s.DeferSession(context.Background(), &api.DeferSessionRequest{
		CreateSessionRequest: api.CreateSessionRequest{
			TimeSlotIDs: []string{"a", "b", "c"},
			StudentID:   "stu",
		},
		SelectionStart: day.Add(9 * time.Hour),
		SelectionEnd:   day.Add(10*time.Hour + 30*time.Minute),
	})
	if err != nil {
		t.Fatalf("DeferSession() error = %v", err)
	}

	_, err = s.ReplaySession(context.Background(), token, "")
	if !errors.Is(err, response.ErrInconsistentSelection) {
		t.Fatalf("ReplaySession() error = %v, want ErrInconsistentSelection", err)
	}
}

func TestReplaySessionUnknownToken(t *testing.T) {
	s := newTestService(&fakeStore{})

	_, err := s.ReplaySession(context.Background(), "no-such-token", "stu")
	if !errors.Is(err, response.ErrNotFound) {
		t.Fatalf("ReplaySession() error = %v, want ErrNotFound", err)
	}
}

func TestListSessionsAggregatesLinks(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{meetings: []*models.Meeting{
		{
			ID: "m1", SlotID: "a", TutorID: "t1", StudentID: "stu",
			Subject: "math", Status: models.MeetingConfirmed,
			StartTime: day.Add(10 * time.Hour), EndTime: day.Add(10*time.Hour + 30*time.Minute),
		},
		{
			ID: "m2", SlotID: "b", TutorID: "t1", StudentID: "stu",
			Subject: "math", Status: models.MeetingConfirmed,
			StartTime: day.Add(10*time.Hour + 30*time.Minute), EndTime: day.Add(11 * time.Hour),
		},
	}}
	s := newTestService(store)

	tutor := "t1"
	sessions, err := s.ListSessions(context.Background(), &tutor, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("ListSessions() returned %d sessions, want 1", len(sessions))
	}
	if len(sessions[0].MeetingIDs) != 2 {
		t.Errorf("session meeting ids = %v, want both links", sessions[0].MeetingIDs)
	}
	// June 3rd is in the past relative to the fixed clock.
	if sessions[0].Status != string(models.MeetingCompleted) {
		t.Errorf("session status = %q, want completed", sessions[0].Status)
	}
}

func TestScopeActiveRejectsUnknownScope(t *testing.T) {
	s := newTestService(&fakeStore{})

	_, err := s.ScopeActive(context.Background(), "t1", "fortnight", testNow)
	if !errors.Is(err, response.ErrBadRequest) {
		t.Fatalf("ScopeActive() error = %v, want ErrBadRequest", err)
	}
}

func TestMonthCalendarClickableDays(t *testing.T) {
	store := &fakeStore{summaries: []*models.DailySummary{
		{TutorID: "t1", Date: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), HasAvailableSlots: true},
		{TutorID: "t1", Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), HasAvailableSlots: true},
		{TutorID: "t1", Date: time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC), HasBookedSlots: true},
	}}
	s := newTestService(store)

	days, err := s.MonthCalendar(context.Background(), "t1", 2024, time.June)
	if err != nil {
		t.Fatalf("MonthCalendar() error = %v", err)
	}
	if len(days) != 35 {
		t.Fatalf("MonthCalendar() returned %d days, want 35 for June 2024", len(days))
	}

	byDate := make(map[string]*api.CalendarDayResponse, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	if byDate["2024-05-27"].InMonth {
		t.Error("leading May day marked in month")
	}
	if byDate["2024-06-05"].Clickable {
		t.Error("past day with availability marked clickable")
	}
	if !byDate["2024-06-20"].Clickable {
		t.Error("future day with availability not clickable")
	}
	if byDate["2024-06-25"].Clickable {
		t.Error("booked-only day marked clickable")
	}
	if !byDate["2024-06-25"].HasBookedSlots {
		t.Error("booked day lost its summary flags")
	}
}
