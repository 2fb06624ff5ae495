package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the minimum Similarity a candidate needs to be
// suggested.
const DefaultThreshold = 0.6

type scored struct {
	name  string
	score float64
}

// Closest returns up to limit candidates whose normalized form is at least
// threshold similar to the normalized query, best first. Ties are broken by
// name so the result is deterministic. Exact normalized matches are
// included; callers that already failed an exact lookup usually want them.
func Closest(query string, candidates []string, threshold float64, limit int) []string {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	q := Normalize(query)

	var hits []scored

	for _, c := range candidates {
		if s := Similarity(q, Normalize(c)); s >= threshold {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits {
		if slices.Contains(out, h.name) {
			continue
		}

		out = append(out, h.name)
		if len(out) == limit {
			break
		}
	}

	return out
}
