package match

import (
	"sort"
)

const (
	// DefaultThreshold is the minimum similarity for a candidate to be suggested.
	DefaultThreshold = 0.6
	// DefaultLimit caps the number of suggestions attached to an error.
	DefaultLimit = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates whose similarity to name is at least
// DefaultThreshold, best first. Ties sort by name. The name itself is never
// suggested.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var ranked []scored

	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if c == name {
			continue
		}

		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		if s := Similarity(name, c); s >= DefaultThreshold {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
