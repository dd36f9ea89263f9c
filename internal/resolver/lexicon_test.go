package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionForms(t *testing.T) {
	assert.Equal(t, []string{"at", "ct", "ca"}, DeletionForms("cat", 1))
	assert.Equal(t, []string{"t", "c"}, DeletionForms("cat", 2))
	assert.Empty(t, DeletionForms("a", 2))
	assert.Empty(t, DeletionForms("cat", 3))
	assert.Equal(t, []string{"ék", "ak", "aé"}, DeletionForms("aék", 1), "deletes runes, not bytes")
}

func TestDeletionLexicon_RoundTrip(t *testing.T) {
	vocab := []string{"daiin", "dain", "chedy", "qokeey", "ol", "s"}
	lx := BuildDeletionLexicon(vocab)

	for _, w := range vocab {
		for _, f := range DeletionForms(w, 1) {
			require.Contains(t, lx.Del1, f)
			assert.Contains(t, lx.Del1[f], w, "del1[%q]", f)
		}
		for _, f := range DeletionForms(w, 2) {
			require.Contains(t, lx.Del2, f)
			assert.Contains(t, lx.Del2[f], w, "del2[%q]", f)
		}
	}
	assert.Len(t, lx.Del1["dain"], 1, "daiin yields dain twice but is stored once")
}

func TestDeletionLexicon_Lookup(t *testing.T) {
	lx := BuildDeletionLexicon([]string{"daiin", "dain", "chedy"})

	tests := []struct {
		name  string
		token string
		want  []Match
	}{
		{"exact", "daiin", []Match{{"daiin", 0}, {"dain", 1}}},
		{"shorter query", "dan", []Match{{"dain", 1}, {"daiin", 2}}},
		{"substitution", "chody", []Match{{"chedy", 1}}},
		{"nothing near", "qokal", []Match{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lx.Lookup(tt.token))
		})
	}

	var nilLx *DeletionLexicon
	assert.Nil(t, nilLx.Lookup("daiin"))
}

func TestUnitDL(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"ab", "ba", 1},
		{"kitten", "sitting", 3},
		{"daiin", "dain", 1},
		{"chedy", "chdey", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unitDL(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
