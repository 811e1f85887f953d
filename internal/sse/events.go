// Package sse implements Server-Sent Events for real-time gallery updates and event broadcasting.
package sse

import (
	"time"

	"github.com/photovault/photovault-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventPhotoCreated represents a photo creation event.
	EventPhotoCreated EventType = "photo.created"
	// EventPhotoUpdated represents a photo update event.
	EventPhotoUpdated EventType = "photo.updated"
	// EventPhotoDeleted represents a photo deletion event.
	EventPhotoDeleted EventType = "photo.deleted"

	// EventAlbumCreated represents an album creation event.
	EventAlbumCreated EventType = "album.created"
	// EventAlbumUpdated represents an album update event.
	EventAlbumUpdated EventType = "album.updated"
	// EventAlbumDeleted represents an album deletion event.
	EventAlbumDeleted EventType = "album.deleted"

	// EventUploadProgress represents a progress step for one file in an upload batch.
	EventUploadProgress EventType = "upload.progress"
	// EventUploadCompleted represents completion of one file in an upload batch.
	EventUploadCompleted EventType = "upload.completed"
	// EventUploadFailed represents a per-file upload failure.
	EventUploadFailed EventType = "upload.failed"

	// EventImportDetected represents a file picked up by the import watcher.
	EventImportDetected EventType = "import.detected"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// PhotoEventData is the data payload for photo events.
type PhotoEventData struct {
	Photo *domain.Photo `json:"photo"`
}

// PhotoDeletedEventData is the data payload for photo delete events.
type PhotoDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	PhotoID   string    `json:"photo_id"`
}

// AlbumEventData is the data payload for album events.
type AlbumEventData struct {
	Album *domain.Album `json:"album"`
}

// AlbumDeletedEventData is the data payload for album delete events.
type AlbumDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	AlbumID   string    `json:"album_id"`
}

// UploadProgressEventData is the data payload for upload progress events.
type UploadProgressEventData struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
	Progress int    `json:"progress"`
}

// UploadCompletedEventData is the data payload for upload completion events.
type UploadCompletedEventData struct {
	Token string        `json:"token"`
	Photo *domain.Photo `json:"photo"`
}

// UploadFailedEventData is the data payload for upload failure events.
type UploadFailedEventData struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ImportDetectedEventData is the data payload for import watcher events.
type ImportDetectedEventData struct {
	Path string `json:"path"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewPhotoCreatedEvent creates a photo.created event.
func NewPhotoCreatedEvent(photo *domain.Photo) Event {
	return Event{
		Type:      EventPhotoCreated,
		Data:      PhotoEventData{Photo: photo},
		Timestamp: time.Now(),
	}
}

// NewPhotoUpdatedEvent creates a photo.updated event.
func NewPhotoUpdatedEvent(photo *domain.Photo) Event {
	return Event{
		Type:      EventPhotoUpdated,
		Data:      PhotoEventData{Photo: photo},
		Timestamp: time.Now(),
	}
}

// NewPhotoDeletedEvent creates a photo.deleted event.
func NewPhotoDeletedEvent(photoID string, deletedAt time.Time) Event {
	return Event{
		Type: EventPhotoDeleted,
		Data: PhotoDeletedEventData{
			PhotoID:   photoID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewAlbumCreatedEvent creates an album.created event.
func NewAlbumCreatedEvent(album *domain.Album) Event {
	return Event{
		Type:      EventAlbumCreated,
		Data:      AlbumEventData{Album: album},
		Timestamp: time.Now(),
	}
}

// NewAlbumUpdatedEvent creates an album.updated event.
func NewAlbumUpdatedEvent(album *domain.Album) Event {
	return Event{
		Type:      EventAlbumUpdated,
		Data:      AlbumEventData{Album: album},
		Timestamp: time.Now(),
	}
}

// NewAlbumDeletedEvent creates an album.deleted event.
func NewAlbumDeletedEvent(albumID string, deletedAt time.Time) Event {
	return Event{
		Type: EventAlbumDeleted,
		Data: AlbumDeletedEventData{
			AlbumID:   albumID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewUploadProgressEvent creates an upload.progress event.
func NewUploadProgressEvent(token, filename string, progress int) Event {
	return Event{
		Type: EventUploadProgress,
		Data: UploadProgressEventData{
			Token:    token,
			Filename: filename,
			Progress: progress,
		},
		Timestamp: time.Now(),
	}
}

// NewUploadCompletedEvent creates an upload.completed event.
func NewUploadCompletedEvent(token string, photo *domain.Photo) Event {
	return Event{
		Type: EventUploadCompleted,
		Data: UploadCompletedEventData{
			Token: token,
			Photo: photo,
		},
		Timestamp: time.Now(),
	}
}

// NewUploadFailedEvent creates an upload.failed event.
func NewUploadFailedEvent(token, filename string, err error) Event {
	return Event{
		Type: EventUploadFailed,
		Data: UploadFailedEventData{
			Token:    token,
			Filename: filename,
			Error:    err.Error(),
		},
		Timestamp: time.Now(),
	}
}

// NewImportDetectedEvent creates an import.detected event.
func NewImportDetectedEvent(path string) Event {
	return Event{
		Type:      EventImportDetected,
		Data:      ImportDetectedEventData{Path: path},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: time.Now()},
		Timestamp: time.Now(),
	}
}
