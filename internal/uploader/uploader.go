// Package uploader orchestrates the photo upload pipeline: content type
// filtering, metadata probing, file storage, and persistence, with
// per-file progress tracking surfaced over SSE.
package uploader

import (
	"context"
	"log/slog"
	"time"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
	"github.com/photovault/photovault-server/internal/id"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/sse"
	"github.com/photovault/photovault-server/internal/util"
)

// progressStep is the increment between synthetic progress updates.
const progressStep = 20

// PhotoCreator persists new photos. Satisfied by the photo service.
type PhotoCreator interface {
	Create(ctx context.Context, photo *domain.Photo) error
}

// MediaStore persists photo files. Satisfied by images.Storage.
type MediaStore interface {
	Store(photoID, filename string, data []byte) (images.Stored, error)
}

// MediaProbe extracts image metadata. Satisfied by images.DecodeProbe
// and images.StaticProbe.
type MediaProbe interface {
	Probe(ctx context.Context, filename string, data []byte) (images.Metadata, error)
}

// Emitter broadcasts upload events. Satisfied by the SSE manager.
type Emitter interface {
	Emit(event any)
}

// File is one file in an upload batch.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Failure records a single file that could not be processed.
// One bad file never fails the batch.
type Failure struct {
	Filename string `json:"filename"`
	Token    string `json:"token,omitempty"`
	Err      error  `json:"-"`
	Message  string `json:"error"`
}

// Result is the outcome of an upload batch.
type Result struct {
	Photos   []*domain.Photo `json:"photos"`
	Failures []Failure       `json:"failures,omitempty"`
	Skipped  []string        `json:"skipped,omitempty"`
}

// Orchestrator runs upload batches sequentially, tracking per-file
// progress under transient tokens.
type Orchestrator struct {
	photos  PhotoCreator
	media   MediaStore
	probe   MediaProbe
	emitter Emitter
	logger  *slog.Logger

	// progress maps tracking token to percent complete. Entries exist
	// only while a file is in flight; completion and failure both
	// remove them, so the map never accumulates stale tokens.
	progress *SyncMap[string, int]

	stepDelay time.Duration
}

// NewOrchestrator creates a new upload orchestrator.
func NewOrchestrator(photos PhotoCreator, media MediaStore, probe MediaProbe, emitter Emitter, stepDelay time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		photos:    photos,
		media:     media,
		probe:     probe,
		emitter:   emitter,
		logger:    logger,
		progress:  NewSyncMap[string, int](),
		stepDelay: stepDelay,
	}
}

// Upload processes a batch of files sequentially.
//
// Non-image files are skipped up front; a batch with no image files at
// all is a validation error. Each remaining file is processed in
// isolation: a failure is recorded and the batch moves on. Only
// context cancellation aborts the batch early.
func (o *Orchestrator) Upload(ctx context.Context, files []File) (*Result, error) {
	valid := make([]File, 0, len(files))
	result := &Result{Photos: make([]*domain.Photo, 0, len(files))}

	for _, f := range files {
		if util.IsImageContentType(f.ContentType) {
			valid = append(valid, f)
		} else {
			o.logger.Debug("skipping non-image upload",
				"filename", f.Filename,
				"content_type", f.ContentType,
			)
			result.Skipped = append(result.Skipped, f.Filename)
		}
	}

	if len(valid) == 0 {
		return nil, errors.Validation("no image files in upload")
	}

	for _, f := range valid {
		photo, token, err := o.processFile(ctx, f)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			o.logger.Warn("upload failed",
				"filename", f.Filename,
				"token", token,
				"error", err,
			)
			o.emitter.Emit(sse.NewUploadFailedEvent(token, f.Filename, err))
			result.Failures = append(result.Failures, Failure{
				Filename: f.Filename,
				Token:    token,
				Err:      err,
				Message:  err.Error(),
			})
			continue
		}
		result.Photos = append(result.Photos, photo)
	}

	return result, nil
}

// processFile runs one file through the pipeline. The returned token
// identifies the file's progress entries even after failure.
func (o *Orchestrator) processFile(ctx context.Context, f File) (*domain.Photo, string, error) {
	token := id.Token()

	o.progress.Store(token, 0)
	defer o.progress.Delete(token)

	o.emitter.Emit(sse.NewUploadProgressEvent(token, f.Filename, 0))

	// Synthetic intermediate steps. Real work below is fast enough
	// that clients would otherwise jump straight from 0 to done.
	for pct := progressStep; pct < 100; pct += progressStep {
		if err := o.stepPause(ctx); err != nil {
			return nil, token, err
		}
		o.progress.Store(token, pct)
		o.emitter.Emit(sse.NewUploadProgressEvent(token, f.Filename, pct))
	}

	photoID, err := id.Generate("photo")
	if err != nil {
		return nil, token, errors.Wrap(err, errors.CodeInternal, "generate photo id")
	}

	meta, err := o.probe.Probe(ctx, f.Filename, f.Data)
	if err != nil {
		return nil, token, errors.Wrap(err, errors.CodeValidation, "probe image")
	}

	stored, err := o.media.Store(photoID, f.Filename, f.Data)
	if err != nil {
		return nil, token, errors.Wrap(err, errors.CodeTransport, "store image")
	}

	now := time.Now()
	photo := &domain.Photo{
		Entity:       domain.Entity{ID: photoID},
		Name:         util.DisplayName(f.Filename),
		Filename:     f.Filename,
		ContentType:  f.ContentType,
		URL:          stored.URL,
		ThumbnailURL: stored.ThumbnailURL,
		BlurHash:     meta.BlurHash,
		Size:         int64(len(f.Data)),
		Width:        meta.Width,
		Height:       meta.Height,
		UploadedAt:   now,
		TakenAt:      &now,
	}

	if err := o.photos.Create(ctx, photo); err != nil {
		return nil, token, err
	}

	o.progress.Store(token, 100)
	o.emitter.Emit(sse.NewUploadProgressEvent(token, f.Filename, 100))
	o.emitter.Emit(sse.NewUploadCompletedEvent(token, photo))

	o.logger.Info("photo uploaded",
		"photo_id", photoID,
		"filename", f.Filename,
		"size", photo.Size,
	)

	return photo, token, nil
}

// Progress reports the percent complete for an in-flight upload.
// Returns false once the upload has settled.
func (o *Orchestrator) Progress(token string) (int, bool) {
	return o.progress.Load(token)
}

// ActiveUploads returns the number of files currently in flight.
func (o *Orchestrator) ActiveUploads() int {
	return o.progress.Len()
}

// stepPause waits between progress steps, honoring cancellation.
func (o *Orchestrator) stepPause(ctx context.Context) error {
	if o.stepDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(o.stepDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
