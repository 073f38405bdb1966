// Package sync replicates a user's trip hierarchy between the local store
// and the remote document store, for backup and restore across devices.
//
// Backup fans out one idempotent document write per trip and per child
// entity, retries the whole set once on partial failure, and reports a
// single consolidated result. Restore lists the user's remote trips and
// rebuilds them locally, append-only. Neither operation resolves
// conflicts; the deterministic document keys make the last write win.
package sync

import (
	"log/slog"

	"github.com/triplogapp/triplog-server/internal/identity"
	"github.com/triplogapp/triplog-server/internal/ratelimit"
	"github.com/triplogapp/triplog-server/internal/remote"
	"github.com/triplogapp/triplog-server/internal/store"
)

// Default write pacing, applied when Options leaves them zero.
const (
	defaultWriteRate  = 50
	defaultWriteBurst = 10
)

// Options configures a sync Service.
type Options struct {
	// ProjectID names the remote project in permission diagnostics.
	ProjectID string
	// WriteRate caps remote document writes per second.
	WriteRate int
	// WriteBurst is the limiter burst size.
	WriteBurst int
}

// Service orchestrates backup and restore between the local store and the
// remote document store.
type Service struct {
	local     store.Store
	remote    remote.Client
	resolver  identity.Resolver
	projectID string
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewService creates a sync service.
func NewService(local store.Store, remoteClient remote.Client, resolver identity.Resolver, opts Options, logger *slog.Logger) *Service {
	if opts.WriteRate <= 0 {
		opts.WriteRate = defaultWriteRate
	}
	if opts.WriteBurst <= 0 {
		opts.WriteBurst = defaultWriteBurst
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		local:     local,
		remote:    remoteClient,
		resolver:  resolver,
		projectID: opts.ProjectID,
		limiter:   ratelimit.New(float64(opts.WriteRate), opts.WriteBurst),
		logger:    logger,
	}
}
