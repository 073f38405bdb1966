// Package domain defines the core entities synchronized between the local
// store and the remote document store.
package domain

import "time"

// DefaultCurrency is used when a restored trip or expense carries no currency.
const DefaultCurrency = "USD"

// Trip is the root entity of the hierarchy. It owns zero or more Schedule,
// Expense, and Capture entities, all keyed by the trip's locally assigned id.
// The id is stable across sync: the remote document for a trip is keyed by
// this id, which makes every backup write an idempotent overwrite.
type Trip struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	StartDate      string    `json:"start_date"` // ISO date, e.g. "2026-03-14"
	EndDate        string    `json:"end_date"`
	Destination    string    `json:"destination"`
	Notes          string    `json:"notes"`
	PhotoURL       string    `json:"photo_url"`
	MapLatitude    float64   `json:"map_latitude"`
	MapLongitude   float64   `json:"map_longitude"`
	Budget         float64   `json:"budget"`
	BudgetCurrency string    `json:"budget_currency"`
	Participants   []string  `json:"participants"`
	IsGroupTrip    bool      `json:"is_group_trip"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTrip creates a trip owned by the given local user.
func NewTrip(userID int64, name string) *Trip {
	now := time.Now()
	return &Trip{
		UserID:         userID,
		Name:           name,
		BudgetCurrency: DefaultCurrency,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Touch updates the modification timestamp.
func (t *Trip) Touch() {
	t.UpdatedAt = time.Now()
}
