package resolver

import "voynich/internal/normalize"

// unitDL is the unweighted Damerau–Levenshtein distance (adjacent
// transpositions only).
func unitDL(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

// matchesPattern reports whether word has the same length as pattern and
// agrees with it everywhere except at uncertainty markers.
func matchesPattern(pattern, word []rune) bool {
	if len(pattern) != len(word) {
		return false
	}
	for i, p := range pattern {
		if p != normalize.Marker && p != word[i] {
			return false
		}
	}
	return true
}

// fill replaces each marker in token, left to right, with the next unit.
func fill(token []rune, units []string) string {
	out := make([]rune, 0, len(token)+len(units))
	next := 0
	for _, r := range token {
		if r == normalize.Marker && next < len(units) {
			out = append(out, []rune(units[next])...)
			next++
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// product calls fn with every length-n tuple drawn from units, in
// lexicographic order of indices.
func product(units []string, n int, fn func([]string)) {
	if n <= 0 || len(units) == 0 {
		return
	}
	tuple := make([]string, n)
	var rec func(pos int)
	rec = func(pos int) {
		if pos == n {
			fn(tuple)
			return
		}
		for _, u := range units {
			tuple[pos] = u
			rec(pos + 1)
		}
	}
	rec(0)
}
