package recipe

import (
	"sort"
	"strings"
)

// minOverlap is the minimum number of matching ingredients a recipe needs
// before it is considered a candidate. A single incidental overlap is too
// weak a signal.
const minOverlap = 2

// NormalizeIngredients splits a comma-separated ingredient phrase into
// trimmed, lowercased tokens, preserving order and dropping empty segments.
func NormalizeIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToLower(strings.TrimSpace(p)); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// OverlapScore counts how many query tokens appear in the recipe's
// ingredient list. Containment is checked in both directions so that
// "roma tomato" matches a stored "tomato" and vice versa. Each token
// contributes at most 1 regardless of how many ingredients it matches.
func OverlapScore(tokens []string, ingredients []string) int {
	score := 0
	for _, tok := range tokens {
		for _, ing := range ingredients {
			ing = strings.ToLower(ing)
			if strings.Contains(ing, tok) || strings.Contains(tok, ing) {
				score++
				break
			}
		}
	}
	return score
}

// Filters holds the constraints a candidate recipe must satisfy.
type Filters struct {
	Dietary    []string
	Difficulty string
	MaxTime    int
	MinRating  float64
}

// DefaultFilters returns the permissive filter set used when a request
// leaves everything unspecified.
func DefaultFilters() Filters {
	return Filters{Difficulty: DifficultyAll, MaxTime: 999}
}

// Admit reports whether the recipe satisfies every filter. Dietary tags use
// AND semantics: each requested tag must be present on the recipe.
func (f Filters) Admit(r Recipe) bool {
	for _, want := range f.Dietary {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		found := false
		for _, have := range r.Dietary {
			if strings.ToLower(have) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Difficulty != DifficultyAll && r.Difficulty != f.Difficulty {
		return false
	}
	if r.CookTime > f.MaxTime {
		return false
	}
	if r.Rating < f.MinRating {
		return false
	}
	return true
}

// Rank scores every recipe against the query tokens and returns the
// admitted candidates with score >= minOverlap, ordered by score descending.
// The sort is stable so ties keep the collection's iteration order.
func Rank(recipes []Recipe, tokens []string, f Filters) []Match {
	matches := make([]Match, 0)
	for _, r := range recipes {
		score := OverlapScore(tokens, r.Ingredients)
		if score < minOverlap || !f.Admit(r) {
			continue
		}
		matches = append(matches, Match{Recipe: r, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
