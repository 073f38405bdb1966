package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/store"
)

// expenseColumns must match the scan order in scanExpense.
const expenseColumns = `id, trip_id, category, amount, currency, note, spent_at, image_paths`

func scanExpense(scanner interface{ Scan(dest ...any) error }) (*domain.Expense, error) {
	var e domain.Expense

	var (
		note       sql.NullString
		imagePaths string
	)

	err := scanner.Scan(
		&e.ID,
		&e.TripID,
		&e.Category,
		&e.Amount,
		&e.Currency,
		&note,
		&e.SpentAt,
		&imagePaths,
	)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		e.Note = note.String
	}
	e.ImagePaths = decodeStrings(imagePaths)

	return &e, nil
}

// CreateExpense inserts a new expense. Follows the same id policy as
// CreateTrip: an already-taken explicit id falls back to a fresh one.
func (s *Store) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.ID != 0 {
		err := s.insertExpense(ctx, expense, true)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return err
		}
		expense.ID = 0
	}
	return s.insertExpense(ctx, expense, false)
}

func (s *Store) insertExpense(ctx context.Context, expense *domain.Expense, withID bool) error {
	cols := `trip_id, category, amount, currency, note, spent_at, image_paths`
	placeholders := `?, ?, ?, ?, ?, ?, ?`
	args := []any{
		expense.TripID,
		expense.Category,
		expense.Amount,
		expense.Currency,
		nullString(expense.Note),
		expense.SpentAt,
		encodeStrings(expense.ImagePaths),
	}
	if withID {
		cols = "id, " + cols
		placeholders = "?, " + placeholders
		args = append([]any{expense.ID}, args...)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+cols+`) VALUES (`+placeholders+`)`, args...)
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
		expense.ID = id
	}
	return nil
}

// ListExpenses returns all expenses of a trip ordered by id.
func (s *Store) ListExpenses(ctx context.Context, tripID int64) ([]*domain.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
