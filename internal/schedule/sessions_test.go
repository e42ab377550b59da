package schedule

import (
	"math/rand"
	"testing"
	"time"

	"slotcal-service/internal/models"
)

func link(id string, day time.Time, h, m int, subject, student string, status models.MeetingStatus) models.Meeting {
	start := day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	return models.Meeting{
		ID:        id,
		SlotID:    "slot-" + id,
		TutorID:   "tutor-1",
		StudentID: student,
		Subject:   subject,
		Platform:  "zoom",
		Status:    status,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func TestAggregateSessions_GroupsContiguousSameSubject(t *testing.T) {
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	now := day

	links := []models.Meeting{
		link("1", day, 9, 0, "X", "stu-1", models.MeetingConfirmed),
		link("2", day, 9, 30, "X", "stu-1", models.MeetingConfirmed),
		link("3", day, 10, 0, "Y", "stu-1", models.MeetingConfirmed),
	}

	sessions := AggregateSessions(links, now)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].StartTime.Equal(day.Add(9*time.Hour)) || !sessions[0].EndTime.Equal(day.Add(10*time.Hour)) {
		t.Fatalf("expected first session 09:00-10:00, got %s-%s", sessions[0].StartTime, sessions[0].EndTime)
	}
	if len(sessions[0].SlotIDs) != 2 || sessions[0].SlotIDs[0] != "slot-1" || sessions[0].SlotIDs[1] != "slot-2" {
		t.Fatalf("expected time-ordered slot ids, got %v", sessions[0].SlotIDs)
	}
	if sessions[1].Subject != "Y" {
		t.Fatalf("expected second session subject Y, got %q", sessions[1].Subject)
	}
}

func TestAggregateSessions_InputOrderDoesNotMatter(t *testing.T) {
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	now := day

	links := []models.Meeting{
		link("1", day, 9, 0, "X", "stu-1", models.MeetingConfirmed),
		link("2", day, 9, 30, "X", "stu-1", models.MeetingConfirmed),
		link("3", day, 10, 0, "X", "stu-2", models.MeetingConfirmed),
		link("4", day, 14, 0, "X", "stu-1", models.MeetingPending),
	}

	want := AggregateSessions(links, now)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Meeting, len(links))
		copy(shuffled, links)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := AggregateSessions(shuffled, now)
		if len(got) != len(want) {
			t.Fatalf("shuffle %d: expected %d sessions, got %d", i, len(want), len(got))
		}
		for j := range want {
			if !got[j].StartTime.Equal(want[j].StartTime) || !got[j].EndTime.Equal(want[j].EndTime) {
				t.Fatalf("shuffle %d: session %d differs", i, j)
			}
		}
	}
}

func TestAggregateSessions_StudentBoundaryStartsNewSession(t *testing.T) {
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	links := []models.Meeting{
		link("1", day, 9, 0, "X", "stu-1", models.MeetingConfirmed),
		link("2", day, 9, 30, "X", "stu-2", models.MeetingConfirmed),
	}

	sessions := AggregateSessions(links, day)
	if len(sessions) != 2 {
		t.Fatalf("expected adjacency with a different student to split, got %d sessions", len(sessions))
	}
}

func TestAggregateSessions_DerivesCompleted(t *testing.T) {
	day := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	links := []models.Meeting{
		link("1", day, 9, 0, "X", "stu-1", models.MeetingConfirmed),
		link("2", day, 14, 0, "X", "stu-1", models.MeetingCancelled),
	}

	sessions := AggregateSessions(links, day.Add(20*time.Hour))
	if sessions[0].Status != models.MeetingCompleted {
		t.Fatalf("expected past confirmed session completed, got %s", sessions[0].Status)
	}
	if sessions[1].Status != models.MeetingCancelled {
		t.Fatalf("expected canceled session to stay canceled, got %s", sessions[1].Status)
	}
}

func TestAggregateSessions_Empty(t *testing.T) {
	if got := AggregateSessions(nil, time.Now()); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
