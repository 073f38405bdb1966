package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triplogapp/triplog-server/internal/domain"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
	"github.com/triplogapp/triplog-server/internal/remote"
)

func TestRestoreEmptyRemoteFails(t *testing.T) {
	f := newFixture(t)

	err := f.service.Restore(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNoData))
	assert.Contains(t, err.Error(), "no backup data found")
}

func TestRestoreSurfacesTripListingError(t *testing.T) {
	f := newFixture(t)

	f.remote.SeedDoc(remote.TripDoc(testRemoteUser, 7), map[string]any{
		"tripName": "Hanoi",
	})
	f.remote.DenyPath(remote.TripsCollection(testRemoteUser))

	err := f.service.Restore(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "list remote trips")

	trips, listErr := f.local.ListTripsByUser(context.Background(), 1)
	require.NoError(t, listErr)
	assert.Empty(t, trips, "nothing restored when the listing fails")
}

func TestRestoreIgnoresPreflightMarker(t *testing.T) {
	f := newFixture(t)

	// A crashed preflight can leave its marker behind. It is not a trip.
	f.remote.SeedDoc(remote.PreflightDoc(testRemoteUser), map[string]any{"token": "abc"})

	err := f.service.Restore(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNoData))
}

func TestRestoreRebuildsTripWithChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.remote.SeedDoc(remote.TripDoc(testRemoteUser, 7), map[string]any{
		"tripId":       int64(7),
		"tripName":     "Hanoi",
		"startDate":    "2026-03-14",
		"endDate":      "2026-03-20",
		"destination":  "Hanoi",
		"participants": []any{"Minh", "Alex"},
		"isGroupTrip":  true,
	})
	f.remote.SeedDoc(remote.ChildDoc(testRemoteUser, 7, remote.KindExpenses, 3), map[string]any{
		"category": "food",
		"amount":   12.5,
		"note":     "pho",
	})
	f.remote.SeedDoc(remote.ChildDoc(testRemoteUser, 7, remote.KindSchedules, 2), map[string]any{
		"day":        1,
		"title":      "Old Quarter walk",
		"imagePaths": `["walk.jpg"]`,
	})

	require.NoError(t, f.service.Restore(ctx, 42))

	trip, err := f.local.GetTrip(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), trip.UserID)
	assert.Equal(t, "Hanoi", trip.Name)
	assert.Equal(t, []string{"Minh", "Alex"}, trip.Participants)
	assert.True(t, trip.IsGroupTrip)
	assert.Equal(t, "USD", trip.BudgetCurrency, "missing currency defaults")

	expenses, err := f.local.ListExpenses(ctx, 7)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, int64(3), expenses[0].ID)
	assert.Equal(t, "food", expenses[0].Category)
	assert.Equal(t, 12.5, expenses[0].Amount)
	assert.Equal(t, "USD", expenses[0].Currency)

	schedules, err := f.local.ListSchedules(ctx, 7)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Old Quarter walk", schedules[0].Title)
	assert.Equal(t, []string{"walk.jpg"}, schedules[0].ImagePaths)
}

func TestRestoreIsAppendOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.remote.SeedDoc(remote.TripDoc(testRemoteUser, 7), map[string]any{
		"tripName": "Hanoi",
	})

	require.NoError(t, f.service.Restore(ctx, 1))
	require.NoError(t, f.service.Restore(ctx, 1))

	trips, err := f.local.ListTripsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, trips, 2, "restoring twice duplicates, never merges")
	assert.NotEqual(t, trips[0].ID, trips[1].ID)
	for _, trip := range trips {
		assert.Equal(t, "Hanoi", trip.Name)
	}
}

func TestRestoreUnparsableDocKeyGetsFreshID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.remote.SeedDoc(remote.TripsCollection(testRemoteUser)+"/legacy-key", map[string]any{
		"tripName": "Old backup",
	})

	require.NoError(t, f.service.Restore(ctx, 1))

	trips, err := f.local.ListTripsByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Positive(t, trips[0].ID)
	assert.Equal(t, "Old backup", trips[0].Name)
}

func TestRestoreChildFailureDoesNotFailRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.remote.SeedDoc(remote.TripDoc(testRemoteUser, 7), map[string]any{
		"tripName": "Hanoi",
	})
	f.remote.SeedDoc(remote.ChildDoc(testRemoteUser, 7, remote.KindExpenses, 3), map[string]any{
		"category": "food",
		"amount":   12.5,
	})
	f.remote.DenyPath(remote.ChildCollectionKey(testRemoteUser, "7", remote.KindExpenses))

	require.NoError(t, f.service.Restore(ctx, 1), "child collection failures are log-only")

	_, err := f.local.GetTrip(ctx, 7)
	require.NoError(t, err)
	expenses, err := f.local.ListExpenses(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestBackupRestoreRoundtrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	trip := f.seedTrip(t, 1, "Hanoi")
	exp := domain.NewExpense(trip.ID, "food", 12.5)
	require.NoError(t, f.local.CreateExpense(ctx, exp))
	capt := domain.NewCapture(trip.ID, 1, "media/hanoi.jpg", "photo")
	require.NoError(t, f.local.CreateCapture(ctx, capt))

	require.NoError(t, f.service.Backup(ctx, 1))

	// Restore into a second device: fresh local store, same remote.
	other := newFixture(t)
	other.service.remote = f.remote
	f.remote.ListCalls = 0

	require.NoError(t, other.service.Restore(ctx, 9))

	restored, err := other.local.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), restored.UserID)
	assert.Equal(t, "Hanoi", restored.Name)
	assert.Equal(t, trip.Participants, restored.Participants)

	expenses, err := other.local.ListExpenses(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, exp.ID, expenses[0].ID)
	assert.Equal(t, 12.5, expenses[0].Amount)

	captures, err := other.local.ListCaptures(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, captures, 1)
	assert.Equal(t, "media/hanoi.jpg", captures[0].MediaPath)
	assert.Equal(t, int64(9), captures[0].UserID)

	// One trip listing plus three child-collection reads.
	assert.Equal(t, 4, f.remote.ListCalls)
}
