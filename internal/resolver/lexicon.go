package resolver

import "sort"

// DeletionLexicon maps strings obtained by deleting characters from a
// vocabulary word back to the words that produce them. Del1 holds single
// deletions, Del2 deletions of two adjacent characters.
type DeletionLexicon struct {
	Del1  map[string]map[string]struct{}
	Del2  map[string]map[string]struct{}
	vocab map[string]struct{}
}

// Match is a vocabulary word reachable from a query by symmetric deletes.
type Match struct {
	Word     string
	Distance int
}

// DeletionForms lists the strings produced by deleting one character at
// each position (k=1) or two adjacent characters at each position (k=2).
// Other k values yield nothing.
func DeletionForms(word string, k int) []string {
	r := []rune(word)
	var out []string
	switch k {
	case 1:
		for i := range r {
			out = append(out, string(r[:i])+string(r[i+1:]))
		}
	case 2:
		for i := 0; i+1 < len(r); i++ {
			out = append(out, string(r[:i])+string(r[i+2:]))
		}
	}
	return out
}

// BuildDeletionLexicon indexes the deletion forms of every vocabulary word.
func BuildDeletionLexicon(vocab []string) *DeletionLexicon {
	lx := &DeletionLexicon{
		Del1:  make(map[string]map[string]struct{}),
		Del2:  make(map[string]map[string]struct{}),
		vocab: make(map[string]struct{}, len(vocab)),
	}
	for _, w := range vocab {
		lx.vocab[w] = struct{}{}
		for _, f := range DeletionForms(w, 1) {
			addForm(lx.Del1, f, w)
		}
		for _, f := range DeletionForms(w, 2) {
			addForm(lx.Del2, f, w)
		}
	}
	return lx
}

func addForm(idx map[string]map[string]struct{}, form, word string) {
	set, ok := idx[form]
	if !ok {
		set = make(map[string]struct{})
		idx[form] = set
	}
	set[word] = struct{}{}
}

// Lookup returns vocabulary words within one or two symmetric deletions of
// token, ranked by Damerau–Levenshtein distance and then alphabetically.
// The default candidate path does not use it.
func (lx *DeletionLexicon) Lookup(token string) []Match {
	if lx == nil {
		return nil
	}
	found := make(map[string]struct{})
	collect := func(set map[string]struct{}) {
		for w := range set {
			found[w] = struct{}{}
		}
	}
	if _, ok := lx.vocab[token]; ok {
		found[token] = struct{}{}
	}
	// vocabulary words longer than the token
	collect(lx.Del1[token])
	collect(lx.Del2[token])
	// shorter or same length
	for _, f := range DeletionForms(token, 1) {
		if _, ok := lx.vocab[f]; ok {
			found[f] = struct{}{}
		}
		collect(lx.Del1[f])
	}
	for _, f := range DeletionForms(token, 2) {
		if _, ok := lx.vocab[f]; ok {
			found[f] = struct{}{}
		}
	}

	out := make([]Match, 0, len(found))
	for w := range found {
		out = append(out, Match{Word: w, Distance: unitDL(token, w)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance == out[j].Distance {
			return out[i].Word < out[j].Word
		}
		return out[i].Distance < out[j].Distance
	})
	return out
}
