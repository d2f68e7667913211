// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/roboscout/internal/app"
	"github.com/okian/roboscout/internal/domain/normalize"
)

// EventDependencies defines the interface for event ingestion and listing.
type EventDependencies interface {
	IngestEvent(ctx context.Context, raw normalize.RawEventPayload) (service.EventInfo, error)
	Events(ctx context.Context) ([]service.EventInfo, error)
}

// EventsHandler handles event requests
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleEvents dispatches /events by method.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.HandlePostEvent(w, r)
	case http.MethodGet:
		h.HandleListEvents(w, r)
	default:
		methodNotAllowed(w, "api.events", http.MethodGet, http.MethodPost)
	}
}

// HandlePostEvent handles POST /events requests. The body is one event in
// FTC API shape: {"event": {...}, "rankings": [...], "matches": [...],
// "awards": [...]}. An event with a known code replaces the stored one.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	var req normalize.RawEventPayload
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	info, err := h.deps.IngestEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// HandleListEvents handles GET /events requests.
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"
	events, err := h.deps.Events(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
