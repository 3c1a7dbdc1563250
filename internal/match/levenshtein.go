package match

import (
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Levenshtein returns the minimum number of single-rune insertions, deletions
// or substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// Similarity maps the edit distance of the normalized identifiers into [0, 1],
// where 1 means the names are equal after normalization.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)
	if na == "" && nb == "" {
		return 1
	}

	longest := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))

	return 1 - float64(Levenshtein(na, nb))/float64(longest)
}
