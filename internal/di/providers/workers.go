package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/service"
	"github.com/photovault/photovault-server/internal/uploader"
	"github.com/photovault/photovault-server/internal/watcher"
)

// ProvideUploadOrchestrator provides the photo upload pipeline.
func ProvideUploadOrchestrator(i do.Injector) (*uploader.Orchestrator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	photoService := do.MustInvoke[*service.PhotoService](i)
	media := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return uploader.NewOrchestrator(photoService, media, images.NewDecodeProbe(), sseHandle.Manager, cfg.Upload.ProgressStepDelay, log.Logger), nil
}

// ImportWatcherHandle wraps the import directory watcher with shutdown capability.
type ImportWatcherHandle struct {
	*watcher.ImportWatcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ImportWatcherHandle) Shutdown() error {
	if h.ImportWatcher == nil {
		return nil
	}
	h.cancel()
	h.ImportWatcher.Stop()
	return nil
}

// ProvideImportWatcher provides the import directory watcher. The watcher
// is optional: when no import path is configured the handle is empty.
func ProvideImportWatcher(i do.Injector) (*ImportWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Import.WatchPath == "" {
		return &ImportWatcherHandle{}, nil
	}

	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	uploads := do.MustInvoke[*uploader.Orchestrator](i)

	w, err := watcher.New(cfg.Import.WatchPath, cfg.Import.SettleDelay, uploads, sseHandle.Manager, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Import watcher error", "error", err)
		}
	}()

	log.Info("Import watcher started", "path", cfg.Import.WatchPath, "settle_delay", cfg.Import.SettleDelay)

	return &ImportWatcherHandle{
		ImportWatcher: w,
		cancel:        cancel,
	}, nil
}
