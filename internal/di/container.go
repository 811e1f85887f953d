// Package di provides dependency injection configuration for the PhotoVault server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/di/providers"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/service"
	"github.com/photovault/photovault-server/internal/uploader"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideMediaStorage)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvidePhotoService)
	do.Provide(injector, providers.ProvideAlbumService)

	// Workers
	do.Provide(injector, providers.ProvideUploadOrchestrator)
	do.Provide(injector, providers.ProvideImportWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.PhotoService](injector)
	_ = do.MustInvoke[*service.AlbumService](injector)

	// Workers
	_ = do.MustInvoke[*uploader.Orchestrator](injector)
	_ = do.MustInvoke[*providers.ImportWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
