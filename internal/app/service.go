// Package service wires the extractor, the snapshot store and the bridge
// selector behind the query interface used by the CLI, the line protocol
// and the HTTP API.
//
// The service holds no index between calls: every query loads the
// snapshot, answers, and drops it.
package service

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/internal/domain/extract"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/slug"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// Service implements the ladder query interface.
type Service struct {
	store        repository.Store
	extractor    *extract.Extractor
	snapshotPath string
	delta        float64
	limit        int
	logger       logger.Logger

	mu        sync.RWMutex
	lastBuild *extract.Stats
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore replaces the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithExtractor replaces the ratings extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Service) {
		if e != nil {
			s.extractor = e
		}
	}
}

// WithSnapshotPath sets the snapshot queried by Lookup and Suggest.
func WithSnapshotPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.snapshotPath = path
		}
	}
}

// WithDefaults sets the delta and limit used when callers pass none.
func WithDefaults(delta float64, limit int) Option {
	return func(s *Service) {
		if delta > 0 {
			s.delta = delta
		}
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:        repository.NewFileStore(),
		extractor:    extract.New(),
		snapshotPath: "data/ratings.json",
		delta:        bridge.DefaultDelta,
		limit:        bridge.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// SnapshotPath returns the snapshot the service reads.
func (s *Service) SnapshotPath() string { return s.snapshotPath }

// Defaults returns the delta and limit used by callers that have none.
func (s *Service) Defaults() (float64, int) { return s.delta, s.limit }

// Build extracts source and writes the snapshot to dest, returning the
// number of records written. An empty dest means the service snapshot.
// Nothing is written when the source cannot be read.
func (s *Service) Build(ctx context.Context, source, dest string) (int, error) {
	if dest == "" {
		dest = s.snapshotPath
	}
	ix, st, err := s.extractor.ExtractFile(ctx, source)
	if err != nil {
		s.logger.Error(ctx, "extract failed", logger.String("source", source), logger.Error(err))
		return 0, err
	}

	metrics.RecordLinesParsed(st.Lines)
	metrics.RecordLinesSkipped("blank", st.Blank)
	metrics.RecordLinesSkipped("no_slug", st.NoSlug)
	metrics.RecordLinesSkipped("no_rating", st.NoRating)
	metrics.UpdateRecordsExtracted(st.Records)

	if err := s.store.Save(ctx, dest, ix); err != nil {
		s.logger.Error(ctx, "snapshot save failed", logger.String("dest", dest), logger.Error(err))
		return 0, err
	}

	s.mu.Lock()
	s.lastBuild = &st
	s.mu.Unlock()

	s.logger.Info(ctx, "index built",
		logger.String("source", source),
		logger.String("dest", dest),
		logger.Int("lines", st.Lines),
		logger.Int("records", st.Records),
		logger.Int("skipped", st.Skipped()),
		logger.Int("overwritten", st.Overwritten),
	)
	return st.Records, nil
}

// Index loads a fresh copy of the snapshot.
func (s *Service) Index(ctx context.Context) (model.Index, error) {
	return s.store.Load(ctx, s.snapshotPath)
}

// Lookup resolves ref and returns its record.
func (s *Service) Lookup(ctx context.Context, ref string) (model.Record, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		metrics.RecordQuery("lookup", "error")
		return model.Record{}, err
	}
	rec, err := bridge.Lookup(ix, slug.Resolve(ref))
	if err != nil {
		metrics.RecordQuery("lookup", outcome(err))
		return model.Record{}, err
	}
	metrics.RecordQuery("lookup", "ok")
	return rec, nil
}

// Suggest resolves ref and ranks its bridges. A non-positive limit uses
// the service default; delta is passed through and clamped by the selector.
func (s *Service) Suggest(ctx context.Context, ref string, delta float64, limit int) (bridge.Result, error) {
	ix, err := s.Index(ctx)
	if err != nil {
		metrics.RecordQuery("suggest", "error")
		return bridge.Result{}, err
	}
	if limit <= 0 {
		limit = s.limit
	}
	target := slug.Resolve(ref)
	res, err := bridge.Suggest(ix, target, bridge.WithDelta(delta), bridge.WithLimit(limit))
	if err != nil {
		metrics.RecordQuery("suggest", outcome(err))
		s.logger.Debug(ctx, "suggest failed", logger.String("slug", target), logger.Error(err))
		return bridge.Result{}, err
	}

	metrics.RecordBridgesReturned(len(res.Bridges))
	if len(res.Bridges) == 0 {
		metrics.RecordQuery("suggest", "empty")
	} else {
		metrics.RecordQuery("suggest", "ok")
	}
	s.logger.Debug(ctx, "suggested bridges",
		logger.String("slug", target),
		logger.Float64("rating", res.Target.Rating),
		logger.Int("bridges", len(res.Bridges)),
	)
	return res, nil
}

func outcome(err error) string {
	if errors.Is(err, bridge.ErrUnknownIdentifier) {
		return "unknown"
	}
	return "error"
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	stats := map[string]any{
		"snapshotPath": s.snapshotPath,
		"delta":        s.delta,
		"limit":        s.limit,
	}
	if info, err := os.Stat(s.snapshotPath); err == nil {
		stats["snapshotExists"] = true
		stats["snapshotBytes"] = info.Size()
		stats["snapshotModified"] = info.ModTime().UTC()
	} else {
		stats["snapshotExists"] = false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastBuild != nil {
		stats["lastBuild"] = map[string]int{
			"lines":       s.lastBuild.Lines,
			"records":     s.lastBuild.Records,
			"skipped":     s.lastBuild.Skipped(),
			"overwritten": s.lastBuild.Overwritten,
		}
	}
	return stats
}
