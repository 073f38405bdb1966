package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/triplogapp/triplog-server/internal/config"
	"github.com/triplogapp/triplog-server/internal/identity"
	"github.com/triplogapp/triplog-server/internal/logger"
	"github.com/triplogapp/triplog-server/internal/remote"
)

// RemoteClientHandle wraps the remote document client with shutdown capability.
type RemoteClientHandle struct {
	remote.Client
}

// Shutdown implements do.Shutdownable.
func (h *RemoteClientHandle) Shutdown() error {
	return h.Close()
}

// ProvideRemoteClient provides the Firestore-backed document client.
func ProvideRemoteClient(i do.Injector) (*RemoteClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := remote.NewFirestoreClient(context.Background(), cfg.Firebase)
	if err != nil {
		return nil, err
	}

	log.Info("Remote store connected", "project", cfg.Firebase.ProjectID)

	return &RemoteClientHandle{Client: client}, nil
}

// ProvideResolver provides the remote identity resolver. A configured ID
// token is verified against Firebase; otherwise the remote user id is
// taken from configuration as-is.
func ProvideResolver(i do.Injector) (identity.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)

	if cfg.Auth.IDToken != "" {
		resolver, err := identity.NewFirebaseResolver(context.Background(), cfg.Firebase, cfg.Auth.IDToken)
		if err != nil {
			return nil, err
		}
		return resolver, nil
	}
	return identity.StaticResolver{UserID: cfg.Auth.RemoteUser}, nil
}
