// Package remote defines the document-store boundary used for trip backup.
//
// The store is hierarchical and addressed by slash-separated paths; every
// document is independently addressable, so writes at deterministic keys
// are idempotent overwrites. The production implementation is Cloud
// Firestore; tests use the recording fake in client_testing.go.
package remote

import "context"

// Document is a listed document: its key within the collection plus its
// decoded field map.
type Document struct {
	ID   string
	Data map[string]any
}

// Client is a minimal document-store client.
//
// Implementations classify failures through the internal errors package:
// access-control rejections carry CodePermissionDenied, everything else
// remote carries CodeUnavailable with the native message preserved.
type Client interface {
	// Set writes (or overwrites) the document at path.
	Set(ctx context.Context, path string, data map[string]any) error
	// Delete removes the document at path. Deleting a missing document
	// is not an error.
	Delete(ctx context.Context, path string) error
	// List returns every document directly inside the collection at path.
	// An empty collection yields an empty slice, not an error.
	List(ctx context.Context, path string) ([]Document, error)

	Close() error
}
