// Package lcs provides string similarity helpers built on the longest common
// prefix and the longest common subsequence of words.
package lcs

import (
	"slices"
	"strings"
)

// CommonPrefix returns the longest common prefix of the strings in ss.
func CommonPrefix(ss []string) string {
	// This implementation is based on os.path.commonprefix in Python.
	// https://github.com/python/cpython/blob/ed24702bd0f9925908ce48584c31dfad732208b2/Lib/genericpath.py#L105
	if len(ss) == 0 {
		return ""
	}

	// Find the lexicographically smallest and largest strings in ss.
	ss = slices.Clone(ss)
	slices.Sort(ss)

	min := slices.Min(ss)
	max := slices.Max(ss)

	// The longest common prefix of min and max is the longest common prefix of
	// ss because ss is lexicographically sorted.
	for i := range []byte(min) {
		if min[i] != max[i] {
			return min[:i]
		}
	}

	// min itself is the longest common prefix.
	return min
}

// Length returns the length of the longest common subsequence of a and b,
// counted in runes.
func Length(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Closest returns the candidate most similar to s. Similarity is the length
// of the case-insensitive longest common subsequence, and ties are broken by
// the longer common prefix and then by the earlier candidate. A candidate is
// only offered when it shares at least half of the longer string; otherwise
// ok is false.
//
//	Closest("titel", []string{"body", "title"}) // "title", true
func Closest(s string, candidates []string) (best string, ok bool) {
	if s == "" {
		return "", false
	}

	lower := strings.ToLower(s)
	bestScore, bestPrefix := 0, 0
	for _, c := range candidates {
		if c == "" || c == s {
			continue
		}

		lc := strings.ToLower(c)
		score := Length(lower, lc)
		if 2*score < max(len([]rune(lower)), len([]rune(lc))) {
			continue
		}

		prefix := len(CommonPrefix([]string{lower, lc}))
		if score > bestScore || score == bestScore && prefix > bestPrefix {
			best, bestScore, bestPrefix, ok = c, score, prefix, true
		}
	}
	return best, ok
}
