package providers

import (
	"github.com/samber/do/v2"

	"github.com/triplogapp/triplog-server/internal/config"
	"github.com/triplogapp/triplog-server/internal/logger"
	"github.com/triplogapp/triplog-server/internal/store/sqlite"
)

// StoreHandle wraps the local store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the local trip store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Local store opened", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}
