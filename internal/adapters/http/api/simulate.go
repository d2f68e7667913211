// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/roboscout/internal/app"
	"github.com/okian/roboscout/internal/domain/model"
)

// SimulationDependencies defines the interface for match simulation.
type SimulationDependencies interface {
	SimulateMatch(ctx context.Context, req service.SimulationRequest) (model.MatchProjection, error)
}

// SimulationHandler handles match simulation requests.
type SimulationHandler struct {
	deps SimulationDependencies
}

// NewSimulationHandler creates a new simulation handler.
func NewSimulationHandler(deps SimulationDependencies) *SimulationHandler {
	return &SimulationHandler{deps: deps}
}

// HandlePostSimulate handles POST /simulate requests.
func (h *SimulationHandler) HandlePostSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_simulate"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req service.SimulationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, op, err)
		return
	}
	verdict, err := h.deps.SimulateMatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}
