package domain

// Expense records money spent during a trip.
type Expense struct {
	ID         int64    `json:"id"`
	TripID     int64    `json:"trip_id"`
	Category   string   `json:"category"`
	Amount     float64  `json:"amount"`
	Currency   string   `json:"currency"`
	Note       string   `json:"note"`
	SpentAt    int64    `json:"spent_at"` // epoch seconds
	ImagePaths []string `json:"image_paths"`
}

// NewExpense creates an expense bound to a trip.
func NewExpense(tripID int64, category string, amount float64) *Expense {
	return &Expense{
		TripID:   tripID,
		Category: category,
		Amount:   amount,
		Currency: DefaultCurrency,
	}
}
