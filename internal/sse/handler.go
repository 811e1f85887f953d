package sse

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Handler handles SSE connections over HTTP.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

// NewHandler creates a new SSE handler.
func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// ServeHTTP handles the SSE endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		h.logger.Error("streaming not supported", slog.Any("error", err))
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	client, err := h.manager.Connect()
	if err != nil {
		h.logger.Error("failed to connect SSE client", slog.Any("error", err))
		http.Error(w, "failed to establish connection", http.StatusInternalServerError)
		return
	}
	defer h.manager.Disconnect(client.ID)

	// Send initial connection confirmation.
	fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":%q}\n\n", client.ID)
	if err := rc.Flush(); err != nil {
		return
	}

	for {
		select {
		case event, ok := <-client.EventChan:
			if !ok {
				return
			}
			if err := h.sendEvent(w, rc, event); err != nil {
				h.logger.Debug("failed to send event, client likely disconnected",
					slog.String("client_id", client.ID),
					slog.Any("error", err))
				return
			}

		case <-client.Done:
			return

		case <-r.Context().Done():
			return
		}
	}
}

// sendEvent writes a single event in SSE wire format and flushes it.
func (h *Handler) sendEvent(w http.ResponseWriter, rc *http.ResponseController, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := rc.SetWriteDeadline(time.Now().Add(60 * time.Second)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	return rc.Flush()
}
