package sync

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/triplogapp/triplog-server/internal/domain"
	"github.com/triplogapp/triplog-server/internal/remote"
)

// Remote document field maps. Builders produce the exact wire layout;
// parsers apply safe defaults for every optional field so a restore never
// fails on a sparse or hand-edited document.

// tripDoc serializes a trip's scalar fields for its remote document.
// lastSyncedAt is resolved server-side so the stored value reflects when
// the write actually landed.
func tripDoc(t *domain.Trip) map[string]any {
	return map[string]any{
		"tripId":         t.ID,
		"tripName":       t.Name,
		"startDate":      t.StartDate,
		"endDate":        t.EndDate,
		"destination":    t.Destination,
		"notes":          t.Notes,
		"photoUrl":       t.PhotoURL,
		"createdAt":      t.CreatedAt,
		"updatedAt":      t.UpdatedAt,
		"isGroupTrip":    t.IsGroupTrip,
		"mapLatitude":    t.MapLatitude,
		"mapLongitude":   t.MapLongitude,
		"budget":         t.Budget,
		"budgetCurrency": t.BudgetCurrency,
		"participants":   t.Participants,
		"lastSyncedAt":   firestore.ServerTimestamp,
	}
}

// scheduleDoc serializes a schedule. imagePaths travels as a JSON-encoded
// string array, matching what the mobile clients already store.
func scheduleDoc(sc *domain.Schedule) map[string]any {
	return map[string]any{
		"day":                 sc.Day,
		"startTime":           sc.StartTime,
		"endTime":             sc.EndTime,
		"title":               sc.Title,
		"notes":               sc.Notes,
		"location":            sc.Location,
		"participants":        sc.Participants,
		"imagePaths":          encodeJSONStrings(sc.ImagePaths),
		"notifyBeforeMinutes": sc.NotifyBefore,
		"createdAt":           sc.CreatedAt,
		"updatedAt":           sc.UpdatedAt,
	}
}

func expenseDoc(e *domain.Expense) map[string]any {
	return map[string]any{
		"category":   e.Category,
		"amount":     e.Amount,
		"currency":   e.Currency,
		"note":       e.Note,
		"spentAt":    e.SpentAt,
		"imagePaths": e.ImagePaths,
	}
}

func captureDoc(c *domain.Capture) map[string]any {
	return map[string]any{
		"mediaPath":   c.MediaPath,
		"mediaType":   c.MediaType,
		"description": c.Description,
		"capturedAt":  c.CapturedAt,
		"createdAt":   c.CreatedAt,
		"updatedAt":   c.UpdatedAt,
	}
}

// tripFromDocument maps a remote trip document to a new local trip for
// localUserID. The document key becomes the local id when it parses;
// otherwise the id stays zero and the store assigns one.
func tripFromDocument(localUserID int64, doc remote.Document) *domain.Trip {
	trip := &domain.Trip{
		UserID:         localUserID,
		Name:           getString(doc.Data, "tripName"),
		StartDate:      getString(doc.Data, "startDate"),
		EndDate:        getString(doc.Data, "endDate"),
		Destination:    getString(doc.Data, "destination"),
		Notes:          getString(doc.Data, "notes"),
		PhotoURL:       getString(doc.Data, "photoUrl"),
		MapLatitude:    getFloat(doc.Data, "mapLatitude"),
		MapLongitude:   getFloat(doc.Data, "mapLongitude"),
		Budget:         getFloat(doc.Data, "budget"),
		BudgetCurrency: getString(doc.Data, "budgetCurrency"),
		Participants:   getStrings(doc.Data, "participants"),
		IsGroupTrip:    getBool(doc.Data, "isGroupTrip"),
		CreatedAt:      getTime(doc.Data, "createdAt"),
		UpdatedAt:      getTime(doc.Data, "updatedAt"),
	}
	if trip.BudgetCurrency == "" {
		trip.BudgetCurrency = domain.DefaultCurrency
	}
	if id, ok := remote.ParseDocID(doc.ID); ok {
		trip.ID = id
	}
	return trip
}

// scheduleFromDocument maps a remote schedule document to a schedule bound
// to the (possibly reassigned) local trip id.
func scheduleFromDocument(tripID int64, doc remote.Document) *domain.Schedule {
	sc := &domain.Schedule{
		TripID:       tripID,
		Day:          getInt(doc.Data, "day"),
		StartTime:    getString(doc.Data, "startTime"),
		EndTime:      getString(doc.Data, "endTime"),
		Title:        getString(doc.Data, "title"),
		Notes:        getString(doc.Data, "notes"),
		Location:     getString(doc.Data, "location"),
		Participants: getStrings(doc.Data, "participants"),
		ImagePaths:   decodeJSONStrings(getString(doc.Data, "imagePaths")),
		NotifyBefore: getInt(doc.Data, "notifyBeforeMinutes"),
		CreatedAt:    getTime(doc.Data, "createdAt"),
		UpdatedAt:    getTime(doc.Data, "updatedAt"),
	}
	if id, ok := remote.ParseDocID(doc.ID); ok {
		sc.ID = id
	}
	return sc
}

func expenseFromDocument(tripID int64, doc remote.Document) *domain.Expense {
	e := &domain.Expense{
		TripID:     tripID,
		Category:   getString(doc.Data, "category"),
		Amount:     getFloat(doc.Data, "amount"),
		Currency:   getString(doc.Data, "currency"),
		Note:       getString(doc.Data, "note"),
		SpentAt:    getInt64(doc.Data, "spentAt"),
		ImagePaths: getStrings(doc.Data, "imagePaths"),
	}
	if e.Currency == "" {
		e.Currency = domain.DefaultCurrency
	}
	if id, ok := remote.ParseDocID(doc.ID); ok {
		e.ID = id
	}
	return e
}

func captureFromDocument(tripID, localUserID int64, doc remote.Document) *domain.Capture {
	c := &domain.Capture{
		TripID:      tripID,
		UserID:      localUserID,
		MediaPath:   getString(doc.Data, "mediaPath"),
		MediaType:   getString(doc.Data, "mediaType"),
		Description: getString(doc.Data, "description"),
		CapturedAt:  getInt64(doc.Data, "capturedAt"),
		CreatedAt:   getTime(doc.Data, "createdAt"),
		UpdatedAt:   getTime(doc.Data, "updatedAt"),
	}
	if id, ok := remote.ParseDocID(doc.ID); ok {
		c.ID = id
	}
	return c
}

// encodeJSONStrings renders a string slice as its JSON text form.
func encodeJSONStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeJSONStrings parses a JSON array text back into a slice.
// Malformed input decodes to nil.
func decodeJSONStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

// Field getters. Firestore decodes integers as int64 and doubles as
// float64, but documents written by other clients may vary, so each getter
// accepts the plausible encodings and falls back to the zero value.

func getString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func getInt64(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func getInt(m map[string]any, key string) int {
	return int(getInt64(m, key))
}

func getTime(m map[string]any, key string) time.Time {
	if v, ok := m[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func getStrings(m map[string]any, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}
