package providers

import (
	"github.com/samber/do/v2"

	"github.com/triplogapp/triplog-server/internal/config"
	"github.com/triplogapp/triplog-server/internal/identity"
	"github.com/triplogapp/triplog-server/internal/logger"
	"github.com/triplogapp/triplog-server/internal/sync"
)

// ProvideSyncService provides the backup/restore orchestrator.
func ProvideSyncService(i do.Injector) (*sync.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	remoteHandle := do.MustInvoke[*RemoteClientHandle](i)
	resolver := do.MustInvoke[identity.Resolver](i)

	svc := sync.NewService(storeHandle.Store, remoteHandle.Client, resolver, sync.Options{
		ProjectID:  cfg.Firebase.ProjectID,
		WriteRate:  cfg.Sync.WriteRate,
		WriteBurst: cfg.Sync.WriteBurst,
	}, log.Logger)

	return svc, nil
}
