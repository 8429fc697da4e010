// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/okian/ladder/internal/domain/bridge"
)

// SuggestDependencies defines the interface for suggest operations.
type SuggestDependencies interface {
	Suggest(ctx context.Context, ref string, delta float64, limit int) (bridge.Result, error)
	Defaults() (float64, int)
}

// SuggestHandler handles bridge suggestion requests.
type SuggestHandler struct {
	deps     SuggestDependencies
	maxLimit int
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(deps SuggestDependencies, maxLimit int) *SuggestHandler {
	return &SuggestHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetSuggest handles GET /suggest/{slug}?delta=D&limit=N requests.
// Missing parameters fall back to the service defaults.
func (h *SuggestHandler) HandleGetSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathParam(r, "/suggest/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingSlug)
		return
	}

	delta, limit := h.deps.Defaults()
	q := r.URL.Query()
	if s := q.Get("delta"); s != "" {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidDelta)
			return
		}
		delta = d
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrInvalidLimit)
			return
		}
		limit = n
	}
	if h.maxLimit > 0 && limit > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%w: %d", ErrLimitTooHigh, h.maxLimit))
		return
	}

	res, err := h.deps.Suggest(r.Context(), ref, delta, limit)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
