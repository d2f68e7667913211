package api

import (
	"maps"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/roboscout/pkg/metrics"
)

// StatsProvider exposes service counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// SystemHandler serves the operational endpoints.
type SystemHandler struct {
	stats   StatsProvider
	metrics http.Handler
	started time.Time
}

// NewSystemHandler creates the /healthz and /stats handler.
func NewSystemHandler(stats StatsProvider) *SystemHandler {
	return &SystemHandler{
		stats: stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
		started: time.Now(),
	}
}

// HandleHealth serves the analytics registry in Prometheus exposition format.
func (h *SystemHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.healthz", http.MethodGet)
		return
	}
	h.metrics.ServeHTTP(w, r)
}

// HandleStats serves the service counters plus the handler's uptime.
func (h *SystemHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.get_stats", http.MethodGet)
		return
	}
	var stats map[string]interface{}
	if h.stats != nil {
		stats = h.stats.GetStats()
	}
	out := make(map[string]interface{}, len(stats)+1)
	maps.Copy(out, stats)
	out["uptime_seconds"] = int64(time.Since(h.started).Seconds())
	writeJSON(w, http.StatusOK, out)
}
