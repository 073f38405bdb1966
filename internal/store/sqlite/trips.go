package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/store"
)

// tripColumns is the ordered list of columns selected in trip queries.
// Must match the scan order in scanTrip.
const tripColumns = `id, user_id, name, start_date, end_date, destination, notes, photo_url,
	map_latitude, map_longitude, budget, budget_currency, participants, is_group_trip,
	created_at, updated_at`

// scanTrip scans a sql.Row (or sql.Rows via its Scan method) into a domain.Trip.
func scanTrip(scanner interface{ Scan(dest ...any) error }) (*domain.Trip, error) {
	var t domain.Trip

	var (
		destination  sql.NullString
		notes        sql.NullString
		photoURL     sql.NullString
		participants string
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.StartDate,
		&t.EndDate,
		&destination,
		&notes,
		&photoURL,
		&t.MapLatitude,
		&t.MapLongitude,
		&t.Budget,
		&t.BudgetCurrency,
		&participants,
		&t.IsGroupTrip,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if destination.Valid {
		t.Destination = destination.String
	}
	if notes.Valid {
		t.Notes = notes.String
	}
	if photoURL.Valid {
		t.PhotoURL = photoURL.String
	}
	t.Participants = decodeStrings(participants)

	return &t, nil
}

// CreateTrip inserts a new trip. When trip.ID is nonzero the insert keeps
// that id; if the id is already taken a fresh one is assigned instead, so
// repeated restores stay append-only. trip.ID holds the final id on return.
func (s *Store) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if trip.ID != 0 {
		err := s.insertTrip(ctx, trip, true)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return err
		}
		s.logger.Debug("trip id taken, assigning fresh id", "trip_id", trip.ID)
		trip.ID = 0
	}
	return s.insertTrip(ctx, trip, false)
}

func (s *Store) insertTrip(ctx context.Context, trip *domain.Trip, withID bool) error {
	cols := `user_id, name, start_date, end_date, destination, notes, photo_url,
		map_latitude, map_longitude, budget, budget_currency, participants, is_group_trip,
		created_at, updated_at`
	placeholders := `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`
	args := []any{
		trip.UserID,
		trip.Name,
		trip.StartDate,
		trip.EndDate,
		nullString(trip.Destination),
		nullString(trip.Notes),
		nullString(trip.PhotoURL),
		trip.MapLatitude,
		trip.MapLongitude,
		trip.Budget,
		trip.BudgetCurrency,
		encodeStrings(trip.Participants),
		trip.IsGroupTrip,
		formatTime(trip.CreatedAt),
		formatTime(trip.UpdatedAt),
	}
	if withID {
		cols = "id, " + cols
		placeholders = "?, " + placeholders
		args = append([]any{trip.ID}, args...)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (`+cols+`) VALUES (`+placeholders+`)`, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	if !withID {
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		trip.ID = id
	}
	return nil
}

// GetTrip returns a trip by id, or store.ErrNotFound.
func (s *Store) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// ListTripsByUser returns all trips owned by the given local user,
// oldest first.
func (s *Store) ListTripsByUser(ctx context.Context, userID int64) ([]*domain.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trips, nil
}
