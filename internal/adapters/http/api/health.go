package api

import (
	"net/http"

	"github.com/okian/ladder/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves the Prometheus exposition of the ladder registry on
// /healthz. A scrape that succeeds doubles as a liveness check.
type HealthHandler struct {
	registry func() prometheus.Gatherer
}

// NewHealthHandler serves metrics.GetRegistry, resolved on every request so
// a registry replaced by metrics.Init is picked up.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{registry: func() prometheus.Gatherer { return metrics.GetRegistry() }}
}

// HandleHealth handles GET and HEAD /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	promhttp.HandlerFor(h.registry(), promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}).ServeHTTP(w, r)
}

// readOnly answers 404 for anything but GET and HEAD and reports whether
// the handler should go on. Responses are never cached.
func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return false
	}
	w.Header().Set("Cache-Control", "no-store")
	return true
}
