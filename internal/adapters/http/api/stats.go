package api

import (
	"net/http"
)

// StatsProvider reports the snapshot location, query defaults and the
// outcome of the last build.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatsHandler serves /stats.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a stats handler over provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET and HEAD /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.provider.GetStats())
}
