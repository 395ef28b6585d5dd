package schedule

import (
	"strings"

	"animecal/pkg/models"
)

// GenreAll is the sentinel that disables genre filtering.
const GenreAll = "all"

// Filter applies the search query and genre selection. An empty query
// is the identity filter; GenreAll disables the genre test. Pure and
// order-preserving.
func Filter(episodes []models.Episode, query, genre string) []models.Episode {
	query = strings.ToLower(strings.TrimSpace(query))
	genre = strings.TrimSpace(genre)

	out := make([]models.Episode, 0, len(episodes))
	for _, ep := range episodes {
		if query != "" && !matchesQuery(ep, query) {
			continue
		}
		if genre != "" && genre != GenreAll && !hasGenre(ep, genre) {
			continue
		}
		out = append(out, ep)
	}
	return out
}

func matchesQuery(ep models.Episode, lowered string) bool {
	return strings.Contains(strings.ToLower(ep.SeriesTitle), lowered) ||
		strings.Contains(strings.ToLower(ep.Title), lowered)
}

func hasGenre(ep models.Episode, genre string) bool {
	for _, g := range ep.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// GenreOptions returns "all" followed by the distinct genres observed
// across the episodes, in first-seen order.
func GenreOptions(episodes []models.Episode) []string {
	out := []string{GenreAll}
	seen := map[string]struct{}{}
	for _, ep := range episodes {
		for _, g := range ep.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
