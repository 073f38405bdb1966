package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/store"
)

// scheduleColumns is the ordered list of columns selected in schedule queries.
// Must match the scan order in scanSchedule.
const scheduleColumns = `id, trip_id, day, start_time, end_time, title, notes, location,
	participants, image_paths, notify_before_minutes, created_at, updated_at`

func scanSchedule(scanner interface{ Scan(dest ...any) error }) (*domain.Schedule, error) {
	var sc domain.Schedule

	var (
		notes        sql.NullString
		location     sql.NullString
		participants string
		imagePaths   string
		createdAt    string
		updatedAt    string
	)

	err := scanner.Scan(
		&sc.ID,
		&sc.TripID,
		&sc.Day,
		&sc.StartTime,
		&sc.EndTime,
		&sc.Title,
		&notes,
		&location,
		&participants,
		&imagePaths,
		&sc.NotifyBefore,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sc.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sc.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		sc.Notes = notes.String
	}
	if location.Valid {
		sc.Location = location.String
	}
	sc.Participants = decodeStrings(participants)
	sc.ImagePaths = decodeStrings(imagePaths)

	return &sc, nil
}

// CreateSchedule inserts a new schedule. Follows the same id policy as
// CreateTrip: an already-taken explicit id falls back to a fresh one.
func (s *Store) CreateSchedule(ctx context.Context, schedule *domain.Schedule) error {
	if schedule.ID != 0 {
		err := s.insertSchedule(ctx, schedule, true)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return err
		}
		schedule.ID = 0
	}
	return s.insertSchedule(ctx, schedule, false)
}

func (s *Store) insertSchedule(ctx context.Context, schedule *domain.Schedule, withID bool) error {
	cols := `trip_id, day, start_time, end_time, title, notes, location,
		participants, image_paths, notify_before_minutes, created_at, updated_at`
	placeholders := `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`
	args := []any{
		schedule.TripID,
		schedule.Day,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Title,
		nullString(schedule.Notes),
		nullString(schedule.Location),
		encodeStrings(schedule.Participants),
		encodeStrings(schedule.ImagePaths),
		schedule.NotifyBefore,
		formatTime(schedule.CreatedAt),
		formatTime(schedule.UpdatedAt),
	}
	if withID {
		cols = "id, " + cols
		placeholders = "?, " + placeholders
		args = append([]any{schedule.ID}, args...)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO schedules (`+cols+`) VALUES (`+placeholders+`)`, args...)
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
		schedule.ID = id
	}
	return nil
}

// ListSchedules returns all schedules of a trip ordered by day and id.
func (s *Store) ListSchedules(ctx context.Context, tripID int64) ([]*domain.Schedule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE trip_id = ? ORDER BY day, id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}
