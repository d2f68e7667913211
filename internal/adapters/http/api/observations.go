// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/roboscout/internal/domain/model"
)

// ObservationDependencies defines the interface for scouting data.
type ObservationDependencies interface {
	RecordObservation(ctx context.Context, s model.ObservationSample) (model.ObservationSample, error)
	Observations(ctx context.Context, team int, events ...string) ([]model.ObservationSample, error)
	SetInspection(ctx context.Context, in model.Inspection) (model.Inspection, error)
}

// ObservationsHandler handles match and pit scouting requests.
type ObservationsHandler struct {
	deps ObservationDependencies
}

// NewObservationsHandler creates a new observations handler.
func NewObservationsHandler(deps ObservationDependencies) *ObservationsHandler {
	return &ObservationsHandler{deps: deps}
}

// HandleObservations dispatches /observations by method.
func (h *ObservationsHandler) HandleObservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.HandlePostObservation(w, r)
	case http.MethodGet:
		h.HandleListObservations(w, r)
	default:
		methodNotAllowed(w, "api.observations", http.MethodGet, http.MethodPost)
	}
}

// HandlePostObservation handles POST /observations requests. Posting a
// sample with an existing id replaces it.
func (h *ObservationsHandler) HandlePostObservation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_observation"
	var req model.ObservationSample
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	saved, err := h.deps.RecordObservation(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HandleListObservations handles GET /observations?team=N&events=A,B.
func (h *ObservationsHandler) HandleListObservations(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_observations"
	team, err := parseTeam(r.URL.Query().Get("team"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	list, err := h.deps.Observations(r.Context(), team, eventCodes(r)...)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandlePutInspection handles PUT /inspections requests.
func (h *ObservationsHandler) HandlePutInspection(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_inspection"
	if r.Method != http.MethodPut {
		methodNotAllowed(w, op, http.MethodPut)
		return
	}
	var req model.Inspection
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	saved, err := h.deps.SetInspection(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
