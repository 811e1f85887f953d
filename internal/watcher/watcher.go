// Package watcher monitors an import directory and feeds settled image
// files into the upload pipeline.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/photovault/photovault-server/internal/sse"
	"github.com/photovault/photovault-server/internal/uploader"
	"github.com/photovault/photovault-server/internal/util"
)

// Ingestor accepts files for ingestion. Satisfied by the upload orchestrator.
type Ingestor interface {
	Upload(ctx context.Context, files []uploader.File) (*uploader.Result, error)
}

// Emitter broadcasts import events. Satisfied by the SSE manager.
type Emitter interface {
	Emit(event any)
}

// pendingFile tracks a file that may still be written to.
type pendingFile struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// ImportWatcher watches a directory and ingests image files once they
// stop changing for a settle period.
type ImportWatcher struct {
	path        string
	settleDelay time.Duration
	ingestor    Ingestor
	emitter     Emitter
	watcher     *fsnotify.Watcher
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingFile

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates an import watcher for the given directory.
func New(path string, settleDelay time.Duration, ingestor Ingestor, emitter Emitter, logger *slog.Logger) (*ImportWatcher, error) {
	if settleDelay <= 0 {
		settleDelay = 2 * time.Second
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat import path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("import path %s is not a directory", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch import path: %w", err)
	}

	return &ImportWatcher{
		path:        filepath.Clean(path),
		settleDelay: settleDelay,
		ingestor:    ingestor,
		emitter:     emitter,
		watcher:     fsw,
		logger:      logger,
		pending:     make(map[string]*pendingFile),
		done:        make(chan struct{}),
	}, nil
}

// Start watches for events until the context is cancelled.
// Files already present in the directory are ingested on startup.
func (w *ImportWatcher) Start(ctx context.Context) error {
	w.logger.Info("import watcher starting",
		slog.String("path", w.path),
		slog.Duration("settle_delay", w.settleDelay))

	w.scanExisting(ctx)

	w.wg.Add(1)
	go w.processEvents(ctx)

	<-ctx.Done()
	return nil
}

// Stop stops the watcher and releases resources.
func (w *ImportWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, p := range w.pending {
			p.timer.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		_ = w.watcher.Close()
		w.wg.Wait()

		w.logger.Info("import watcher stopped")
	})
	return nil
}

// scanExisting queues files that were dropped in while the server was down.
func (w *ImportWatcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.path)
	if err != nil {
		w.logger.Warn("failed to scan import directory", "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(w.path, entry.Name())
		if w.shouldIgnore(full) {
			continue
		}
		w.startSettling(ctx, full)
	}
}

func (w *ImportWatcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("import watcher error", "error", err)
		}
	}
}

func (w *ImportWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	path := event.Name

	if w.shouldIgnore(path) {
		return
	}

	if event.Op&fsnotify.Remove != 0 {
		w.cancelPending(path)
		return
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		w.startSettling(ctx, path)
	}
}

// shouldIgnore filters out hidden files, temp files and non-images.
func (w *ImportWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == ".tmp" || ext == ".part" || ext == ".crdownload" {
		return true
	}
	return !util.IsImageContentType(mime.TypeByExtension(ext))
}

// startSettling (re)arms the settle timer for a file.
func (w *ImportWatcher) startSettling(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		return
	}
	if info.IsDir() {
		return
	}

	p := &pendingFile{
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	p.timer = time.AfterFunc(w.settleDelay, func() {
		w.checkSettled(ctx, path)
	})
	w.pending[path] = p
}

// checkSettled ingests a file once its size and mtime stop moving.
func (w *ImportWatcher) checkSettled(ctx context.Context, path string) {
	w.mu.Lock()

	p, exists := w.pending[path]
	if !exists {
		w.mu.Unlock()
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		w.mu.Unlock()
		return
	}

	if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
		// Still being written, restart the timer.
		p.size = info.Size()
		p.modTime = info.ModTime()
		p.timer = time.AfterFunc(w.settleDelay, func() {
			w.checkSettled(ctx, path)
		})
		w.mu.Unlock()
		return
	}

	delete(w.pending, path)
	w.mu.Unlock()

	w.ingest(ctx, path)
}

// ingest reads a settled file, runs it through the upload pipeline and
// removes it from the import directory on success.
func (w *ImportWatcher) ingest(ctx context.Context, path string) {
	select {
	case <-w.done:
		return
	default:
	}

	w.emitter.Emit(sse.NewImportDetectedEvent(path))

	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read import file", "path", path, "error", err)
		return
	}

	filename := filepath.Base(path)
	result, err := w.ingestor.Upload(ctx, []uploader.File{{
		Filename:    filename,
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))),
		Data:        data,
	}})
	if err != nil {
		w.logger.Warn("import ingestion failed", "path", path, "error", err)
		return
	}
	if len(result.Photos) == 0 {
		w.logger.Warn("import produced no photos", "path", path)
		return
	}

	w.logger.Info("imported photo",
		slog.String("path", path),
		slog.String("photo_id", result.Photos[0].ID))

	if err := os.Remove(path); err != nil {
		w.logger.Warn("failed to remove imported file", "path", path, "error", err)
	}
}

// cancelPending drops a pending file without ingesting it.
func (w *ImportWatcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
		delete(w.pending, path)
	}
}
