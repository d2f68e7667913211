// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	service "github.com/okian/roboscout/internal/app"
)

// AnalysisDependencies defines the interface for season analysis.
type AnalysisDependencies interface {
	AnalyzeSeason(ctx context.Context, codes ...string) (service.Analysis, error)
}

// AnalysisHandler handles season analysis requests.
type AnalysisHandler struct {
	deps AnalysisDependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// HandleGetAnalysis handles GET /analysis?events=A,B requests. Without a
// selection every stored event is analyzed.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	a, err := h.deps.AnalyzeSeason(r.Context(), eventCodes(r)...)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
