package bridge

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/okian/ladder/internal/domain/model"
)

const maxSuggestions = 3

// nearest returns up to n slugs within edit distance max(2, len(input)/3)
// of input, closest first.
func nearest(ix model.Index, input string, n int) []string {
	if input == "" || len(ix) == 0 {
		return nil
	}
	threshold := max(2, len(input)/3)

	type hit struct {
		slug string
		dist int
	}
	var hits []hit
	for _, s := range ix.Slugs() {
		if d := levenshtein.ComputeDistance(input, s); d <= threshold {
			hits = append(hits, hit{s, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})
	if len(hits) > n {
		hits = hits[:n]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.slug
	}
	return out
}
