// Package di provides dependency injection configuration for the TripLog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/triplogapp/triplog-server/internal/config"
	"github.com/triplogapp/triplog-server/internal/di/providers"
	"github.com/triplogapp/triplog-server/internal/identity"
	"github.com/triplogapp/triplog-server/internal/logger"
	"github.com/triplogapp/triplog-server/internal/sync"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments the configuration loads from.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig(args))
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layers
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideRemoteClient)

	// Identity
	do.Provide(injector, providers.ProvideResolver)

	// Sync
	do.Provide(injector, providers.ProvideSyncService)

	return injector
}

// Bootstrap initializes all services and returns the first error.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.RemoteClientHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[identity.Resolver](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*sync.Service](injector); err != nil {
		return err
	}
	return nil
}
