// Package identity resolves the authenticated user's opaque remote
// identifier. Sync refuses to run without one.
package identity

import (
	"context"

	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

// Resolver yields the remote user id that namespaces all of the user's
// documents in the remote store.
type Resolver interface {
	// RemoteUserID returns the authenticated user's remote id.
	// Returns an UNAUTHENTICATED error when no identity is available.
	RemoteUserID(ctx context.Context) (string, error)
}

// StaticResolver returns a fixed remote id, for CLI use where the id comes
// from configuration, and for tests.
type StaticResolver struct {
	UserID string
}

// RemoteUserID implements Resolver.
func (r StaticResolver) RemoteUserID(context.Context) (string, error) {
	if r.UserID == "" {
		return "", apperrors.Unauthenticated("no signed-in user; sign in before syncing")
	}
	return r.UserID, nil
}
