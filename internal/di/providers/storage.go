package providers

import (
	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/media/images"
)

// ProvideMediaStorage provides the photo file storage.
func ProvideMediaStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.MediaPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Media storage initialized", "path", cfg.MediaPath())

	return storage, nil
}
