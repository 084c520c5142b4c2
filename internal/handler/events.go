package handler

import (
	"log/slog"
	"net/http"

	"arkiv/internal/httputil"
	"arkiv/internal/notify"
)

// EventsHandler serves the live notification channel over SSE.
type EventsHandler struct {
	hub    *notify.Hub
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *notify.Hub, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, logger: logger}
}

// Stream subscribes the caller to the event stream
// GET /api/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client, err := h.hub.Subscribe(notify.NewSSEWriter(w, flusher))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("event stream opened", "client_id", client.ID)

	// Block until either side ends the stream. The hub's keepalive and
	// sweep goroutines own all writes from here on.
	select {
	case <-r.Context().Done():
		h.hub.Unsubscribe(client.ID)
	case <-client.Done():
	}

	h.logger.Info("event stream closed", "client_id", client.ID)
}
