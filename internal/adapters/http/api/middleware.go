package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/roboscout/pkg/metrics"
)

// errorClass labels a failed response for the error metrics.
type errorClass struct {
	kind     string
	severity string
}

var errorClasses = map[int]errorClass{
	http.StatusNotFound:              {kind: "not_found", severity: "low"},
	http.StatusMethodNotAllowed:      {kind: "method_not_allowed", severity: "low"},
	http.StatusRequestEntityTooLarge: {kind: "payload_too_large", severity: "medium"},
	http.StatusTooManyRequests:       {kind: "rate_limited", severity: "medium"},
	http.StatusServiceUnavailable:    {kind: "unavailable", severity: "high"},
}

func classify(status int) errorClass {
	if c, ok := errorClasses[status]; ok {
		return c
	}
	if status >= http.StatusInternalServerError {
		return errorClass{kind: "server_error", severity: "high"}
	}
	return errorClass{kind: "client_error", severity: "medium"}
}

// MetricsMiddleware records request count and latency for endpoint, and the
// error class of every 4xx and 5xx response.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		ms := float64(time.Since(start).Microseconds()) / 1000
		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, ms)
		if rec.status < http.StatusBadRequest {
			return
		}
		c := classify(rec.status)
		metrics.RecordErrorByEndpoint(endpoint, r.Method, c.kind)
		metrics.RecordErrorByType(c.kind, c.severity)
		metrics.RecordErrorLatency("http", c.kind, ms)
	}
}

// statusRecorder remembers the first status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// Flush forwards to the wrapped writer when it supports flushing.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
