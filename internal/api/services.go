package api

import (
	"github.com/photovault/photovault-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Photos *service.PhotoService
	Albums *service.AlbumService
}
