// Package store defines the local persistence boundary for trip data.
//
// The sync subsystem reads trips and their children through this interface
// during backup and inserts reconstructed entities through it during restore.
// Backup never writes locally; restore never deletes or merges.
package store

import (
	"context"

	"github.com/triplogapp/triplog-server/internal/domain"
)

// Store is the local trip store.
//
// Create* methods assign the entity's ID when it is zero. When an ID is
// already set (restore reuses the remote document key), the insert keeps it;
// if that ID is already taken the store assigns a fresh one instead, so a
// repeated restore stays append-only rather than failing.
type Store interface {
	// Trips.
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	GetTrip(ctx context.Context, id int64) (*domain.Trip, error)
	ListTripsByUser(ctx context.Context, userID int64) ([]*domain.Trip, error)

	// Children of a trip.
	CreateSchedule(ctx context.Context, schedule *domain.Schedule) error
	ListSchedules(ctx context.Context, tripID int64) ([]*domain.Schedule, error)
	CreateExpense(ctx context.Context, expense *domain.Expense) error
	ListExpenses(ctx context.Context, tripID int64) ([]*domain.Expense, error)
	CreateCapture(ctx context.Context, capture *domain.Capture) error
	ListCaptures(ctx context.Context, tripID int64) ([]*domain.Capture, error)

	Close() error
}
