// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/ladder/internal/domain/model"
)

// LookupDependencies defines the interface for lookup operations.
type LookupDependencies interface {
	Lookup(ctx context.Context, ref string) (model.Record, error)
}

// LookupHandler handles lookup requests.
type LookupHandler struct {
	deps LookupDependencies
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(deps LookupDependencies) *LookupHandler {
	return &LookupHandler{deps: deps}
}

// HandleGetLookup handles GET /lookup/{slug} requests.
func (h *LookupHandler) HandleGetLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ref, ok := pathParam(r, "/lookup/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingSlug)
		return
	}
	rec, err := h.deps.Lookup(r.Context(), ref)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// pathParam returns the single path segment after prefix.
func pathParam(r *http.Request, prefix string) (string, bool) {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return "", false
	}
	return p, true
}
