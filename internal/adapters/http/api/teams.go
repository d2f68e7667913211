// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/roboscout/internal/app"
	"github.com/okian/roboscout/internal/domain/model"
)

// TeamDependencies defines the interface for team statistics and projections.
type TeamDependencies interface {
	TeamStats(ctx context.Context, q service.TeamQuery) ([]model.TeamStats, error)
	ProjectTeam(ctx context.Context, team int, events ...string) (model.TeamProjection, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeams handles GET /teams?events=A,B&q=text&advanced=true&sort=key
// requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	query := r.URL.Query()
	q := service.TeamQuery{
		Query:  query.Get("q"),
		Events: eventCodes(r),
		SortBy: query.Get("sort"),
	}
	if raw := query.Get("advanced"); raw != "" {
		advanced, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		q.AdvancedOnly = advanced
	}
	stats, err := h.deps.TeamStats(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleGetProjection handles GET /projection/{team}?events=A,B requests.
func (h *TeamsHandler) HandleGetProjection(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_projection"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/projection/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	team, err := parseTeam(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.ProjectTeam(r.Context(), team, eventCodes(r)...)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
