// Package similarity scores how close two short strings are.
//
// The metric is a length-weighted edit distance:
//
//	identical strings               -> 1.0
//	one string contains the other   -> 0.8
//	otherwise                       -> (maxLen - levenshtein) / maxLen
//
// Lengths are counted in runes. Inputs are compared as given; callers
// normalize case and whitespace.
package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Threshold is the minimum score (exclusive) for two names to be considered the same.
const Threshold = 0.6

// containsScore is returned when one string is a substring of the other.
const containsScore = 0.8

// Score returns the similarity of a and b in [0, 1].
func Score(a, b string) float64 {
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return containsScore
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}

// Close reports whether the score of a and b exceeds Threshold.
func Close(a, b string) bool {
	return Score(a, b) > Threshold
}
