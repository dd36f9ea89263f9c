package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestWord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "daiin", "daiin"},
		{"alternative tail", "chol<->okal", "chol"},
		{"paragraph end", "dy<$>", "dy"},
		{"interruption", "qo<%>kedy", "qokedy"},
		{"marker kept", "ch?dy", "ch?dy"},
		{"only annotation", "<$>", ""},
		{"leading separator", "<->dar", ""},
		{"empty", "", ""},
		{"nfc fold", "e\u0301", "\u00e9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Word(tt.raw))
		})
	}
}

func TestWords_DropsEmpty(t *testing.T) {
	got := Words([]string{"daiin", "<$>", "ol<->ar", "", "s?al"})
	assert.Equal(t, []string{"daiin", "ol", "s?al"}, got)
}

func TestMarkers(t *testing.T) {
	assert.True(t, HasMarker("o?ar"))
	assert.False(t, HasMarker("oar"))
	assert.Equal(t, 0, CountMarkers("chedy"))
	assert.Equal(t, 2, CountMarkers("?he?"))
}

func FuzzWord(f *testing.F) {
	for _, seed := range []string{"daiin", "ch?dy<->x", "<$>", "<%>q?o", "\xff"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		got := Word(raw)
		if strings.Contains(raw, "<") || !utf8.ValidString(raw) || !norm.NFC.IsNormalString(raw) {
			return
		}
		if got != raw {
			t.Errorf("Word(%q) = %q, want input unchanged", raw, got)
		}
	})
}
