// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/internal/domain/model"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Lookup(ctx context.Context, ref string) (model.Record, error)
	Suggest(ctx context.Context, ref string, delta float64, limit int) (bridge.Result, error)

	// Defaults returns the delta and limit used when a request omits them.
	Defaults() (float64, int)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	lookupHandler  *LookupHandler
	suggestHandler *SuggestHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		lookupHandler:  NewLookupHandler(deps),
		suggestHandler: NewSuggestHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/lookup/", MetricsMiddleware(s.lookupHandler.HandleGetLookup, "lookup"))
	mux.HandleFunc("/suggest/", MetricsMiddleware(s.suggestHandler.HandleGetSuggest, "suggest"))
}

type errorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeQueryError translates lookup and suggest failures to responses.
func writeQueryError(w http.ResponseWriter, err error) {
	var unknown *bridge.UnknownIdentifierError
	switch {
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:        "unknown_identifier",
			Message:     unknown.Error(),
			Suggestions: unknown.Suggestions,
		})
	case errors.Is(err, repository.ErrSnapshotMissing):
		writeError(w, http.StatusServiceUnavailable, "snapshot_missing", err)
	case errors.Is(err, repository.ErrSnapshotCorrupt):
		writeError(w, http.StatusInternalServerError, "snapshot_corrupt", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
