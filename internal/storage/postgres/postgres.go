package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"slotcal-service/internal/models"
	"slotcal-service/pkg/response"

	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// DB exposes the underlying handle for the migrator.
func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// #### time slots ####

func (s *Storage) ListSlotsByRange(ctx context.Context, tutorID string, from, to time.Time) ([]*models.TimeSlot, error) {
	const op = "storage.postgres.ListSlotsByRange"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tutor_id, start_time, end_time, is_available
		FROM time_slots
		WHERE tutor_id=$1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		tutorID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanSlots(op, rows)
}

func (s *Storage) GetSlotsByIDs(ctx context.Context, ids []string) ([]*models.TimeSlot, error) {
	const op = "storage.postgres.GetSlotsByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tutor_id, start_time, end_time, is_available
		FROM time_slots
		WHERE id = ANY($1)
		ORDER BY start_time`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanSlots(op, rows)
}

// BulkCreateSlots inserts availability records in one statement. A leftover
// row at the same (tutor, start) is flipped back to available instead of
// duplicated; the absence convention keeps one row per grid segment.
func (s *Storage) BulkCreateSlots(ctx context.Context, tx *sql.Tx, tutorID string, slots []models.TimeSlot) (int64, error) {
	const op = "storage.postgres.BulkCreateSlots"

	if len(slots) == 0 {
		return 0, nil
	}

	starts := make([]time.Time, 0, len(slots))
	ends := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime)
		ends = append(ends, slot.EndTime)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO time_slots (tutor_id, start_time, end_time, is_available)
		SELECT $1, s, e, TRUE FROM unnest($2::timestamptz[], $3::timestamptz[]) AS t(s, e)
		ON CONFLICT (tutor_id, start_time)
		DO UPDATE SET is_available = TRUE, end_time = EXCLUDED.end_time`,
		tutorID, pq.Array(starts), pq.Array(ends),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// BulkDeleteSlots removes availability records. Booked rows
// (is_available=false) are never deleted here; they are freed through
// cancellation.
func (s *Storage) BulkDeleteSlots(ctx context.Context, tx *sql.Tx, ids []string) (int64, error) {
	const op = "storage.postgres.BulkDeleteSlots"

	if len(ids) == 0 {
		return 0, nil
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM time_slots WHERE id = ANY($1) AND is_available = TRUE`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Storage) SetSlotsAvailability(ctx context.Context, tx *sql.Tx, ids []string, available bool) error {
	const op = "storage.postgres.SetSlotsAvailability"

	if len(ids) == 0 {
		return nil
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE time_slots SET is_available=$1 WHERE id = ANY($2)`,
		available, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MarkSlotsBooked flips available rows to booked. Every target row must
// still be available; a row already booked (or gone) by a concurrent
// request fails the whole batch, so two bookings of the same slot can
// never both commit.
func (s *Storage) MarkSlotsBooked(ctx context.Context, tx *sql.Tx, ids []string) error {
	const op = "storage.postgres.MarkSlotsBooked"

	if len(ids) == 0 {
		return nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE time_slots SET is_available=FALSE WHERE id = ANY($1) AND is_available = TRUE`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
	}

	return nil
}

func scanSlots(op string, rows *sql.Rows) ([]*models.TimeSlot, error) {
	var slots []*models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		err := rows.Scan(&slot.ID, &slot.TutorID, &slot.StartTime, &slot.EndTime, &slot.IsAvailable)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return slots, nil
}

// #### meetings ####

func (s *Storage) CreateMeetings(ctx context.Context, tx *sql.Tx, meetings []*models.Meeting) error {
	const op = "storage.postgres.CreateMeetings"

	for _, m := range meetings {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO meetings (time_slot_id, tutor_id, student_id, subject, notes, platform, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			m.SlotID, m.TutorID, m.StudentID, m.Subject, m.Notes, m.Platform, string(m.Status),
		).Scan(&m.ID)
		if err != nil {
			// 23503: the slot row is gone; 23505: the partial unique index
			// on active meetings caught a concurrent booking.
			sqlErr, ok := err.(*pq.Error)
			if ok && (sqlErr.Code == "23503" || sqlErr.Code == "23505") {
				return fmt.Errorf("%s: %w", op, response.ErrBookingConflict)
			}

			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

const meetingColumns = `m.id, m.time_slot_id, m.tutor_id, m.student_id, m.subject, m.notes, m.platform, m.status, ts.start_time, ts.end_time`

func (s *Storage) ListMeetings(ctx context.Context, tutorID, studentID *string, from, to *time.Time) ([]*models.Meeting, error) {
	const op = "storage.postgres.ListMeetings"

	query := `SELECT ` + meetingColumns + `
		FROM meetings m
		JOIN time_slots ts ON ts.id = m.time_slot_id
		WHERE 1=1`
	args := []any{}

	if tutorID != nil {
		args = append(args, *tutorID)
		query += fmt.Sprintf(" AND m.tutor_id=$%d", len(args))
	}
	if studentID != nil {
		args = append(args, *studentID)
		query += fmt.Sprintf(" AND m.student_id=$%d", len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND ts.start_time >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND ts.start_time < $%d", len(args))
	}

	query += " ORDER BY ts.start_time"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanMeetings(op, rows)
}

func (s *Storage) GetMeetingsByIDs(ctx context.Context, ids []string) ([]*models.Meeting, error) {
	const op = "storage.postgres.GetMeetingsByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+meetingColumns+`
		FROM meetings m
		JOIN time_slots ts ON ts.id = m.time_slot_id
		WHERE m.id = ANY($1)
		ORDER BY ts.start_time`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	return scanMeetings(op, rows)
}

func (s *Storage) UpdateMeetingsStatus(ctx context.Context, tx *sql.Tx, ids []string, status models.MeetingStatus) error {
	const op = "storage.postgres.UpdateMeetingsStatus"

	if len(ids) == 0 {
		return nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE meetings SET status=$1 WHERE id = ANY($2)`,
		string(status), pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return nil
}

func scanMeetings(op string, rows *sql.Rows) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	for rows.Next() {
		var m models.Meeting
		var status string
		err := rows.Scan(&m.ID, &m.SlotID, &m.TutorID, &m.StudentID, &m.Subject, &m.Notes, &m.Platform, &status, &m.StartTime, &m.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		m.Status = models.MeetingStatus(status)

		meetings = append(meetings, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return meetings, nil
}

// #### daily summaries ####

func (s *Storage) GetDailySummaries(ctx context.Context, tutorID string, from, to time.Time) ([]*models.DailySummary, error) {
	const op = "storage.postgres.GetDailySummaries"

	rows, err := s.db.QueryContext(ctx,
		`SELECT tutor_id, date, has_available_slots, has_booked_slots
		FROM daily_summaries
		WHERE tutor_id=$1 AND date >= $2 AND date <= $3
		ORDER BY date`,
		tutorID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var summaries []*models.DailySummary
	for rows.Next() {
		var sum models.DailySummary
		err := rows.Scan(&sum.TutorID, &sum.Date, &sum.HasAvailableSlots, &sum.HasBookedSlots)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		summaries = append(summaries, &sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return summaries, nil
}

// RecalculateDailySummary recomputes a day's flags from slot and meeting
// truth and upserts the cached row. Called after every write touching the
// day, never patched incrementally.
func (s *Storage) RecalculateDailySummary(ctx context.Context, tutorID string, date time.Time) (*models.DailySummary, error) {
	const op = "storage.postgres.RecalculateDailySummary"

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sum models.DailySummary
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO daily_summaries (tutor_id, date, has_available_slots, has_booked_slots)
		VALUES (
			$1, $2,
			EXISTS (
				SELECT 1 FROM time_slots
				WHERE tutor_id=$1 AND is_available AND start_time >= $3 AND start_time < $4
			),
			EXISTS (
				SELECT 1 FROM meetings m
				JOIN time_slots ts ON ts.id = m.time_slot_id
				WHERE m.tutor_id=$1 AND m.status != 'canceled'
					AND ts.start_time >= $3 AND ts.start_time < $4
			)
		)
		ON CONFLICT (tutor_id, date)
		DO UPDATE SET has_available_slots = EXCLUDED.has_available_slots,
			has_booked_slots = EXCLUDED.has_booked_slots
		RETURNING tutor_id, date, has_available_slots, has_booked_slots`,
		tutorID, dayStart, dayStart, dayEnd,
	).Scan(&sum.TutorID, &sum.Date, &sum.HasAvailableSlots, &sum.HasBookedSlots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sum, nil
}
