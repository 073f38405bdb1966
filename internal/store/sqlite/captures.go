package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/store"
)

// captureColumns must match the scan order in scanCapture.
const captureColumns = `id, trip_id, user_id, media_path, media_type, description,
	captured_at, created_at, updated_at`

func scanCapture(scanner interface{ Scan(dest ...any) error }) (*domain.Capture, error) {
	var c domain.Capture

	var (
		description sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&c.ID,
		&c.TripID,
		&c.UserID,
		&c.MediaPath,
		&c.MediaType,
		&description,
		&c.CapturedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		c.Description = description.String
	}

	return &c, nil
}

// CreateCapture inserts a new capture. Follows the same id policy as
// CreateTrip: an already-taken explicit id falls back to a fresh one.
func (s *Store) CreateCapture(ctx context.Context, capture *domain.Capture) error {
	if capture.ID != 0 {
		err := s.insertCapture(ctx, capture, true)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return err
		}
		capture.ID = 0
	}
	return s.insertCapture(ctx, capture, false)
}

func (s *Store) insertCapture(ctx context.Context, capture *domain.Capture, withID bool) error {
	cols := `trip_id, user_id, media_path, media_type, description, captured_at, created_at, updated_at`
	placeholders := `?, ?, ?, ?, ?, ?, ?, ?`
	args := []any{
		capture.TripID,
		capture.UserID,
		capture.MediaPath,
		capture.MediaType,
		nullString(capture.Description),
		capture.CapturedAt,
		formatTime(capture.CreatedAt),
		formatTime(capture.UpdatedAt),
	}
	if withID {
		cols = "id, " + cols
		placeholders = "?, " + placeholders
		args = append([]any{capture.ID}, args...)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO captures (`+cols+`) VALUES (`+placeholders+`)`, args...)
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
		capture.ID = id
	}
	return nil
}

// ListCaptures returns all captures of a trip ordered by capture time.
func (s *Store) ListCaptures(ctx context.Context, tripID int64) ([]*domain.Capture, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+captureColumns+` FROM captures WHERE trip_id = ? ORDER BY captured_at, id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*domain.Capture
	for rows.Next() {
		capture, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		captures = append(captures, capture)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return captures, nil
}
