package engine

import (
	"sort"

	"github.com/Ankitzoro/imdb-top250-scraper/models"
)

// unrankedSortKey makes entries without an extracted rank sort after every
// realistically ranked entry.
const unrankedSortKey = 999

// Normalize turns the winning candidate list into the final chart:
// entries without a usable title are dropped, duplicate titles keep their
// first occurrence, the remainder is ordered by extracted rank with
// unranked entries last, ranks are reassigned densely from 1, and the
// result is capped at MaxMovies. Normalizing an already-normalized list is
// a no-op.
func Normalize(in []models.Movie) []models.Movie {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Movie, 0, len(in))
	for _, m := range in {
		if !m.Identified() {
			continue
		}
		if _, dup := seen[m.Title]; dup {
			continue
		}
		seen[m.Title] = struct{}{}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sortRank(out[i]) < sortRank(out[j])
	})

	for i := range out {
		out[i].Rank = i + 1
	}

	if len(out) > models.MaxMovies {
		out = out[:models.MaxMovies]
	}
	return out
}

func sortRank(m models.Movie) int {
	if m.Rank <= 0 {
		return unrankedSortKey
	}
	return m.Rank
}
