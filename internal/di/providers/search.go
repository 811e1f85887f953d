package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/logger"
	"github.com/photovault/photovault-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index and wires it to the store.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	// Wire to store for automatic indexing on photo writes.
	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded backfills the index when it is empty but
// photos exist. Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	photos, err := storeHandle.ListPhotos(ctx)
	if err != nil || len(photos) == 0 {
		return
	}

	log.Info("Search index is empty but photos exist, triggering initial reindex",
		"photo_count", len(photos),
	)

	go func() {
		if err := indexHandle.IndexPhotos(photos); err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		log.Info("Initial search reindex complete", "photo_count", len(photos))
	}()
}
