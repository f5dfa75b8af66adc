package core

// distance.go provides the fuzzy string scoring used to rank header/field
// candidates. Lower scores mean more similar; exact equality after
// normalization scores 0.

import "strings"

// normalizeForMatch prepares a string for distance comparison: lowercased,
// surrounding whitespace trimmed, interior runs collapsed to single spaces.
func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Distance returns the Levenshtein edit distance between a and b after
// case and whitespace normalization. It is deterministic, symmetric, and
// side-effect free; equal inputs score 0.
func Distance(a, b string) int {
	return levenshtein(normalizeForMatch(a), normalizeForMatch(b))
}

// levenshtein computes the edit distance over runes using the two-row
// dynamic programming formulation, O(len(a)*len(b)) time, O(len(b)) space.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
