package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/api"
	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/service"
	"github.com/photovault/photovault-server/internal/sse"
	"github.com/photovault/photovault-server/internal/uploader"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)
	media := do.MustInvoke[*images.Storage](i)
	uploads := do.MustInvoke[*uploader.Orchestrator](i)
	log := do.MustInvoke[*logger.Logger](i)

	photoService := do.MustInvoke[*service.PhotoService](i)
	albumService := do.MustInvoke[*service.AlbumService](i)

	services := &api.Services{
		Photos: photoService,
		Albums: albumService,
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger)

	handler := api.NewServer(cfg, storeHandle.Store, services, uploads, media, searchHandle.SearchIndex, sseHandler, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
