package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"splitpot/internal/api/apierr"
	"splitpot/internal/broker"
	"splitpot/internal/model"
	"splitpot/internal/services/room"
)

// keepalivePeriod is the interval between SSE keepalive comments
const keepalivePeriod = 15 * time.Second

// EventsHandler streams room events over SSE
type EventsHandler struct {
	coordinator room.CoordinatorInterface
	broker      *broker.Broker
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(coordinator room.CoordinatorInterface, b *broker.Broker) *EventsHandler {
	return &EventsHandler{
		coordinator: coordinator,
		broker:      b,
	}
}

// Stream handles GET /api/v1/rooms/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	if _, err := h.coordinator.GetRoom(r.Context(), code); err != nil {
		apierr.WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Subscribe before entering the loop so no event published after the
	// response starts is missed
	sub := h.broker.Subscribe(code)
	defer sub.Close()

	ticker := time.NewTicker(keepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
