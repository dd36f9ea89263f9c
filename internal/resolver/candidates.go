package resolver

import (
	"sort"

	"voynich/internal/normalize"
)

// Candidates proposes fully resolved forms for an ambiguous token.
//
// Passes run in order and the first non-empty one wins:
//  1. every known word of the same length matching the token with each
//     marker standing for exactly one character;
//  2. for tokens with at most MaxMarkers markers, each marker replaced by
//     one of the most frequent character bigrams;
//  3. as 2, but with the most frequent single characters. This only runs
//     when the model has no character bigrams at all.
//
// Tokens with more markers than MaxMarkers and no exact match get no
// candidates. The result is sorted and free of duplicates.
func (m *Model) Candidates(token string) []string {
	pattern := []rune(token)
	markers := normalize.CountMarkers(token)

	seen := make(map[string]struct{})
	for w := range m.WordCounts {
		if matchesPattern(pattern, []rune(w)) {
			seen[w] = struct{}{}
		}
	}
	if len(seen) > 0 {
		return sortedSet(seen)
	}

	if markers == 0 || markers > m.opts.MaxMarkers {
		return nil
	}
	if len(m.TopBigrams) > 0 {
		product(head(m.TopBigrams, m.opts.BigramFill), markers, func(units []string) {
			seen[fill(pattern, units)] = struct{}{}
		})
	}
	if len(seen) == 0 && len(m.TopChars) > 0 {
		product(head(m.TopChars, m.opts.CharFill), markers, func(units []string) {
			seen[fill(pattern, units)] = struct{}{}
		})
	}
	return sortedSet(seen)
}

func head(s []string, n int) []string {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
