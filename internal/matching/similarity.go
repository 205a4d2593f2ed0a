package matching

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a symmetric 0-100 ratio derived from the Levenshtein
// distance of a and b: 100 * (1 - distance / longer length).
// Both arguments are expected to be normalized already.
func Similarity(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

// bestMatch finds the candidate with the highest similarity to keyword.
// Ties keep the earliest candidate. ok is false when candidates is empty.
func bestMatch(keyword string, candidates []string) (best string, score float64, ok bool) {
	for _, c := range candidates {
		s := Similarity(keyword, c)
		if !ok || s > score {
			best, score, ok = c, s, true
		}
	}
	return best, score, ok
}
