package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/triplogapp/triplog-server/internal/domain"
)

// makeTestTripID inserts a trip and returns its id.
func makeTestTripID(t *testing.T, s *Store) int64 {
	t.Helper()
	trip := makeTestTrip(1, "Parent")
	if err := s.CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	return trip.ID
}

func TestCreateAndListSchedules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tripID := makeTestTripID(t, s)

	now := time.Now()
	schedule := &domain.Schedule{
		TripID:       tripID,
		Day:          2,
		StartTime:    "09:30",
		EndTime:      "11:00",
		Title:        "Old Quarter walk",
		Notes:        "meet at the lake",
		Location:     "Hoan Kiem",
		Participants: []string{"Minh"},
		ImagePaths:   []string{"/imgs/a.jpg", "/imgs/b.jpg"},
		NotifyBefore: 30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateSchedule(ctx, schedule); err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	if schedule.ID == 0 {
		t.Fatal("expected assigned schedule id")
	}

	schedules, err := s.ListSchedules(ctx, tripID)
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(schedules))
	}

	got := schedules[0]
	if got.Day != 2 {
		t.Errorf("Day: got %d, want 2", got.Day)
	}
	if got.StartTime != "09:30" || got.EndTime != "11:00" {
		t.Errorf("times: got %q-%q", got.StartTime, got.EndTime)
	}
	if got.Title != schedule.Title {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.Location != schedule.Location {
		t.Errorf("Location: got %q", got.Location)
	}
	if len(got.ImagePaths) != 2 || got.ImagePaths[0] != "/imgs/a.jpg" {
		t.Errorf("ImagePaths: got %v", got.ImagePaths)
	}
	if got.NotifyBefore != 30 {
		t.Errorf("NotifyBefore: got %d, want 30", got.NotifyBefore)
	}
}

func TestSchedulesOrderedByDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tripID := makeTestTripID(t, s)

	now := time.Now()
	for _, day := range []int{3, 1, 2} {
		sc := &domain.Schedule{TripID: tripID, Day: day, Title: "stop", CreatedAt: now, UpdatedAt: now}
		if err := s.CreateSchedule(ctx, sc); err != nil {
			t.Fatalf("CreateSchedule day %d: %v", day, err)
		}
	}

	schedules, err := s.ListSchedules(ctx, tripID)
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if schedules[i].Day != want {
			t.Errorf("schedule %d: got day %d, want %d", i, schedules[i].Day, want)
		}
	}
}

func TestCreateAndListExpenses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tripID := makeTestTripID(t, s)

	expense := &domain.Expense{
		TripID:     tripID,
		Category:   "food",
		Amount:     12.5,
		Currency:   "USD",
		Note:       "pho",
		SpentAt:    1770000000,
		ImagePaths: []string{"/imgs/receipt.jpg"},
	}
	if err := s.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	expenses, err := s.ListExpenses(ctx, tripID)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}

	got := expenses[0]
	if got.Category != "food" {
		t.Errorf("Category: got %q", got.Category)
	}
	if got.Amount != 12.5 {
		t.Errorf("Amount: got %v, want 12.5", got.Amount)
	}
	if got.SpentAt != 1770000000 {
		t.Errorf("SpentAt: got %d", got.SpentAt)
	}
	if len(got.ImagePaths) != 1 {
		t.Errorf("ImagePaths: got %v", got.ImagePaths)
	}
}

func TestCreateExpenseWithExplicitID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tripID := makeTestTripID(t, s)

	expense := &domain.Expense{ID: 3, TripID: tripID, Category: "food", Amount: 12.5, Currency: "USD"}
	if err := s.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if expense.ID != 3 {
		t.Errorf("expected id 3 preserved, got %d", expense.ID)
	}
}

func TestCreateAndListCaptures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tripID := makeTestTripID(t, s)

	now := time.Now()
	capture := &domain.Capture{
		TripID:      tripID,
		UserID:      1,
		MediaPath:   "/dcim/IMG_0042.jpg",
		MediaType:   "photo",
		Description: "sunset over the lake",
		CapturedAt:  now.UnixMilli(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateCapture(ctx, capture); err != nil {
		t.Fatalf("CreateCapture: %v", err)
	}

	captures, err := s.ListCaptures(ctx, tripID)
	if err != nil {
		t.Fatalf("ListCaptures: %v", err)
	}
	if len(captures) != 1 {
		t.Fatalf("expected 1 capture, got %d", len(captures))
	}

	got := captures[0]
	if got.MediaPath != capture.MediaPath {
		t.Errorf("MediaPath: got %q", got.MediaPath)
	}
	if got.MediaType != "photo" {
		t.Errorf("MediaType: got %q", got.MediaType)
	}
	if got.Description != capture.Description {
		t.Errorf("Description: got %q", got.Description)
	}
	if got.CapturedAt != capture.CapturedAt {
		t.Errorf("CapturedAt: got %d, want %d", got.CapturedAt, capture.CapturedAt)
	}
}

func TestChildrenScopedToTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tripA := makeTestTripID(t, s)
	tripB := makeTestTripID(t, s)

	if err := s.CreateExpense(ctx, &domain.Expense{TripID: tripA, Category: "food", Amount: 1, Currency: "USD"}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	expenses, err := s.ListExpenses(ctx, tripB)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expected no expenses for trip B, got %d", len(expenses))
	}
}
