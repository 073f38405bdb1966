package domain

import "time"

// Capture is a photo or video taken during a trip. Only metadata is
// synchronized; the media binary itself stays on the device, so MediaPath
// is meaningful only on the device that recorded it.
type Capture struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	UserID      int64     `json:"user_id"`
	MediaPath   string    `json:"media_path"`
	MediaType   string    `json:"media_type"` // "photo" or "video"
	Description string    `json:"description"`
	CapturedAt  int64     `json:"captured_at"` // epoch milliseconds
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCapture creates a capture bound to a trip and user.
func NewCapture(tripID, userID int64, mediaPath, mediaType string) *Capture {
	now := time.Now()
	return &Capture{
		TripID:     tripID,
		UserID:     userID,
		MediaPath:  mediaPath,
		MediaType:  mediaType,
		CapturedAt: now.UnixMilli(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
