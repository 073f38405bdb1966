package remote

import "strconv"

// ChildKind names a child collection of a trip document.
type ChildKind string

// Child collection names, fixed by the remote layout.
const (
	KindSchedules ChildKind = "schedules"
	KindExpenses  ChildKind = "expenses"
	KindCaptures  ChildKind = "captures"
)

// PreflightDocID is the key of the transient permission-check marker,
// written and deleted inside the user's trip collection.
const PreflightDocID = "preflight_test"

// Remote layout:
//
//	users/{remoteUserID}/trips/{tripID}
//	users/{remoteUserID}/trips/{tripID}/{child kind}/{childID}
//
// Document keys are the entities' local ids, which is what makes every
// backup write an idempotent overwrite. These builders are the only place
// that rule is spelled out.

// TripsCollection returns the user's trip collection path.
func TripsCollection(remoteUserID string) string {
	return "users/" + remoteUserID + "/trips"
}

// TripDoc returns the document path for a trip.
func TripDoc(remoteUserID string, tripID int64) string {
	return TripsCollection(remoteUserID) + "/" + strconv.FormatInt(tripID, 10)
}

// ChildCollection returns a trip's child collection path.
func ChildCollection(remoteUserID string, tripID int64, kind ChildKind) string {
	return ChildCollectionKey(remoteUserID, strconv.FormatInt(tripID, 10), kind)
}

// ChildCollectionKey is ChildCollection for a raw trip document key, used
// during restore where the key may not parse as a local id.
func ChildCollectionKey(remoteUserID, tripKey string, kind ChildKind) string {
	return TripsCollection(remoteUserID) + "/" + tripKey + "/" + string(kind)
}

// ChildDoc returns the document path for a trip's child entity.
func ChildDoc(remoteUserID string, tripID int64, kind ChildKind, childID int64) string {
	return ChildCollection(remoteUserID, tripID, kind) + "/" + strconv.FormatInt(childID, 10)
}

// PreflightDoc returns the path of the preflight marker document.
func PreflightDoc(remoteUserID string) string {
	return TripsCollection(remoteUserID) + "/" + PreflightDocID
}

// ParseDocID parses a document key back into a local id.
// Returns 0 and false for keys that are not positive integers.
func ParseDocID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
