package domain

import "time"

// Schedule is a planned item within a trip day.
type Schedule struct {
	ID           int64     `json:"id"`
	TripID       int64     `json:"trip_id"`
	Day          int       `json:"day"` // 1-based day within the trip
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	Location     string    `json:"location"`
	Participants []string  `json:"participants"`
	ImagePaths   []string  `json:"image_paths"`
	NotifyBefore int       `json:"notify_before_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSchedule creates a schedule bound to a trip.
func NewSchedule(tripID int64, day int, title string) *Schedule {
	now := time.Now()
	return &Schedule{
		TripID:    tripID,
		Day:       day,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
