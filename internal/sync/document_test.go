package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/remote"
)

func TestTripDocumentRoundtrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	trip := &domain.Trip{
		ID:             7,
		UserID:         1,
		Name:           "Hanoi",
		StartDate:      "2026-03-14",
		EndDate:        "2026-03-20",
		Destination:    "Hanoi",
		Budget:         1500,
		BudgetCurrency: "VND",
		Participants:   []string{"Minh"},
		IsGroupTrip:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	doc := tripDoc(trip)
	assert.Equal(t, "Hanoi", doc["tripName"])
	assert.Equal(t, int64(7), doc["tripId"])

	got := tripFromDocument(42, remote.Document{ID: "7", Data: doc})
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(42), got.UserID, "owner follows the restoring user")
	assert.Equal(t, trip.Name, got.Name)
	assert.Equal(t, trip.StartDate, got.StartDate)
	assert.Equal(t, trip.Budget, got.Budget)
	assert.Equal(t, trip.BudgetCurrency, got.BudgetCurrency)
	assert.Equal(t, trip.Participants, got.Participants)
	assert.True(t, got.IsGroupTrip)
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestTripFromSparseDocument(t *testing.T) {
	got := tripFromDocument(1, remote.Document{ID: "not-a-number", Data: map[string]any{}})

	assert.Zero(t, got.ID, "unparsable key leaves id assignment to the store")
	assert.Equal(t, domain.DefaultCurrency, got.BudgetCurrency)
	assert.Empty(t, got.Name)
	assert.Nil(t, got.Participants)
}

func TestScheduleImagePathsTravelAsJSONText(t *testing.T) {
	sched := domain.NewSchedule(7, 1, "walk")
	sched.ImagePaths = []string{"a.jpg", "b.jpg"}

	doc := scheduleDoc(sched)
	require.Equal(t, `["a.jpg","b.jpg"]`, doc["imagePaths"])

	got := scheduleFromDocument(7, remote.Document{ID: "2", Data: doc})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.ImagePaths)
}

func TestDecodeJSONStrings(t *testing.T) {
	assert.Nil(t, decodeJSONStrings(""))
	assert.Nil(t, decodeJSONStrings("[]"))
	assert.Nil(t, decodeJSONStrings("not json"))
	assert.Equal(t, []string{"x"}, decodeJSONStrings(`["x"]`))
}

func TestExpenseFromDocumentDefaults(t *testing.T) {
	got := expenseFromDocument(7, remote.Document{ID: "3", Data: map[string]any{
		"category": "food",
		"amount":   12.5,
		// Firestore hands integers back as int64 but older documents
		// may carry doubles.
		"spentAt": float64(1757000000),
	}})

	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(7), got.TripID)
	assert.Equal(t, 12.5, got.Amount)
	assert.Equal(t, domain.DefaultCurrency, got.Currency)
	assert.Equal(t, int64(1757000000), got.SpentAt)
}

func TestGetStringsAcceptsBothEncodings(t *testing.T) {
	m := map[string]any{
		"native":  []string{"a"},
		"decoded": []any{"b", "c"},
		"mixed":   []any{"d", 5},
	}

	assert.Equal(t, []string{"a"}, getStrings(m, "native"))
	assert.Equal(t, []string{"b", "c"}, getStrings(m, "decoded"))
	assert.Equal(t, []string{"d"}, getStrings(m, "mixed"))
	assert.Nil(t, getStrings(m, "missing"))
}
