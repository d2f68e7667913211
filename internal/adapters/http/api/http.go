// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	service "github.com/okian/roboscout/internal/app"
)

// maxBodyBytes bounds request bodies; a full event payload stays well below.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EventDependencies
	ObservationDependencies
	AnalysisDependencies
	TeamDependencies
	SimulationDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	systemHandler       *SystemHandler
	eventsHandler       *EventsHandler
	observationsHandler *ObservationsHandler
	analysisHandler     *AnalysisHandler
	teamsHandler        *TeamsHandler
	simulationHandler   *SimulationHandler

	writeLimiter *rate.Limiter
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		systemHandler:       NewSystemHandler(statsProvider),
		eventsHandler:       NewEventsHandler(deps),
		observationsHandler: NewObservationsHandler(deps),
		analysisHandler:     NewAnalysisHandler(deps),
		teamsHandler:        NewTeamsHandler(deps),
		simulationHandler:   NewSimulationHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.systemHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.systemHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.limit(s.eventsHandler.HandleEvents), "events"))
	mux.HandleFunc("/observations", MetricsMiddleware(s.limit(s.observationsHandler.HandleObservations), "observations"))
	mux.HandleFunc("/inspections", MetricsMiddleware(s.limit(s.observationsHandler.HandlePutInspection), "inspections"))
	mux.HandleFunc("/analysis", MetricsMiddleware(s.analysisHandler.HandleGetAnalysis, "analysis"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	mux.HandleFunc("/projection/", MetricsMiddleware(s.teamsHandler.HandleGetProjection, "projection"))
	mux.HandleFunc("/simulate", MetricsMiddleware(s.limit(s.simulationHandler.HandlePostSimulate), "simulate"))
}

func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return RateLimitMiddleware(next, s.writeLimiter)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service sentinels into HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrAllianceSize),
		errors.Is(err, service.ErrDuplicateTeam):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

func methodNotAllowed(w http.ResponseWriter, op string, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// writeDecodeError reports a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, op string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", Wrap(op, err))
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
}

// eventCodes parses a comma separated ?events= selection.
func eventCodes(r *http.Request) []string {
	raw := r.URL.Query().Get("events")
	if raw == "" {
		return nil
	}
	var out []string
	for _, code := range strings.Split(raw, ",") {
		if code = strings.TrimSpace(code); code != "" {
			out = append(out, code)
		}
	}
	return out
}

func parseTeam(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, errors.New("team must be a positive integer")
	}
	return n, nil
}

// Compile-time checks that the service satisfies the handler contracts.
var (
	_ Dependencies  = (*service.Service)(nil)
	_ StatsProvider = (*service.Service)(nil)
)

