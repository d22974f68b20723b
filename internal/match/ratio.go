// Package match resolves user-typed dish names against the canonical names
// parsed from a receipt.
//
// Similarity is the Ratcliff/Obershelp ratio: twice the number of characters
// covered by recursively found longest matching blocks, divided by the
// combined length of both strings. It is not an edit distance; substituting
// one would move which candidates clear the cutoff, so the cutoff and the
// metric have to change together.
package match

import "sort"

// DefaultCutoff is the minimum similarity ratio for a match. Below this a
// candidate is reported as having no counterpart on the receipt.
const DefaultCutoff = 0.6

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0, 1].
// Two empty strings are identical (ratio 1); otherwise an empty string
// matches nothing.
func Ratio(a, b string) float64 {
	ar, br := []rune(a), []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ar, br)) / float64(total)
}

// Best returns the single highest-scoring key in index whose similarity to
// candidate is at least cutoff. Keys are scanned in sorted order so that
// ties break deterministically; run-to-run map iteration order never leaks
// into the result.
func Best(candidate string, index map[string]float64, cutoff float64) (string, bool) {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := ""
	bestRatio := 0.0
	for _, k := range keys {
		if r := Ratio(candidate, k); r > bestRatio {
			bestKey, bestRatio = k, r
		}
	}
	if bestRatio < cutoff {
		return "", false
	}
	return bestKey, true
}

// matchingRunes counts the runes covered by matching blocks: it finds the
// longest common block, then recurses on the pieces to its left and right.
func matchingRunes(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestBlock finds the longest run of runes common to a and b, preferring
// the earliest occurrence in a, then in b.
func longestBlock(a, b []rune) (ai, bi, size int) {
	runLen := make(map[int]int, len(b))
	for i := range a {
		next := make(map[int]int, len(b))
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}
	return ai, bi, size
}
