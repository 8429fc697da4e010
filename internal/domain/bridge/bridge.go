// Package bridge picks strictly easier practice problems for a target.
package bridge

import (
	"math"
	"sort"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/domain/slug"
)

// Defaults used when no option overrides them.
const (
	DefaultDelta = 150.0
	DefaultLimit = 3
	minDelta     = 1.0
)

// Candidate is one suggested bridge problem.
type Candidate struct {
	model.Record
	Overlap int     `json:"overlap"` // shared slug tokens with the target
	Gap     float64 `json:"gap"`     // target rating minus candidate rating
}

// Result is the outcome of Suggest. An empty Bridges slice is a valid
// result: nothing in the index sits inside the window.
type Result struct {
	Target  model.Record `json:"target"`
	Bridges []Candidate  `json:"bridges"`
}

type settings struct {
	delta float64
	limit int
}

// Option tunes Suggest.
type Option func(*settings)

// WithDelta sets the maximum rating gap below the target. Values below 1
// are raised to 1 so the window never collapses.
func WithDelta(delta float64) Option {
	return func(s *settings) { s.delta = delta }
}

// WithLimit caps the number of candidates. Non-positive values keep the default.
func WithLimit(limit int) Option {
	return func(s *settings) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// Lookup returns the record for target.
func Lookup(ix model.Index, target string) (model.Record, error) {
	rec, ok := ix.Get(target)
	if !ok {
		return model.Record{}, &UnknownIdentifierError{Slug: target, Suggestions: nearest(ix, target, maxSuggestions)}
	}
	return rec, nil
}

// Suggest ranks the records rated strictly below target and within delta
// of it. Ranking is by shared slug tokens (more first), then by rating gap
// (smaller first), then by slug.
func Suggest(ix model.Index, target string, opts ...Option) (Result, error) {
	cfg := settings{delta: DefaultDelta, limit: DefaultLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	window := math.Max(cfg.delta, minDelta)

	t, err := Lookup(ix, target)
	if err != nil {
		return Result{}, err
	}

	cands := make([]Candidate, 0)
	for _, v := range ix {
		if v.Rating >= t.Rating {
			continue
		}
		gap := t.Rating - v.Rating
		if gap > window {
			continue
		}
		cands = append(cands, Candidate{Record: v, Overlap: slug.Overlap(target, v.Slug), Gap: gap})
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Overlap != b.Overlap {
			return a.Overlap > b.Overlap
		}
		if a.Gap != b.Gap {
			return a.Gap < b.Gap
		}
		return a.Slug < b.Slug
	})
	if len(cands) > cfg.limit {
		cands = cands[:cfg.limit]
	}
	return Result{Target: t, Bridges: cands}, nil
}
