package providers

import (
	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/service"
)

// ProvidePhotoService provides the photo data service.
func ProvidePhotoService(i do.Injector) (*service.PhotoService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPhotoService(storeHandle.Store, log.Logger, cfg.Service.SimulatedLatency), nil
}

// ProvideAlbumService provides the album data service.
func ProvideAlbumService(i do.Injector) (*service.AlbumService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAlbumService(storeHandle.Store, log.Logger, cfg.Service.SimulatedLatency), nil
}
