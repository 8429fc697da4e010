// Package model contains domain models passed between layers.
package model

import "sort"

// Record is the difficulty entry for one problem.
type Record struct {
	Slug      string  `json:"slug"`       // normalized dash-joined identifier
	Rating    float64 `json:"rating"`     // lower is easier
	ProblemID *int    `json:"problem_id"` // nil when the source line had no id
}

// Index maps a slug to its record. An Index is built wholesale and never
// mutated after it has been handed to a reader.
type Index map[string]Record

// Get returns the record for slug.
func (ix Index) Get(slug string) (Record, bool) {
	r, ok := ix[slug]
	return r, ok
}

// Slugs returns all keys in ascending order.
func (ix Index) Slugs() []string {
	out := make([]string, 0, len(ix))
	for k := range ix {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IntPtr returns a pointer to v, for Record.ProblemID.
func IntPtr(v int) *int { return &v }
