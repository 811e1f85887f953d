// Package service provides the business logic layer for photos, albums, and uploads.
//
// Services are the data boundary the rest of the application talks to.
// Every call accepts a context and can simulate network latency, which
// keeps callers honest about the asynchronous nature of the boundary
// even when backed by a local store.
package service

import (
	"context"
	"time"

	"github.com/photovault/photovault-server/internal/errors"
)

// simulateLatency blocks for the configured duration, or until the
// context is cancelled, whichever comes first.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// asTransport passes domain errors through untouched and wraps
// anything else (storage faults, I/O) as a transport failure, so
// callers only ever see the service's error taxonomy.
func asTransport(err error, msg string) error {
	if err == nil {
		return nil
	}
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return errors.Wrap(err, errors.CodeTransport, msg)
}
