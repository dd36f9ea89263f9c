// Package normalize strips transcription annotations from raw EVA tokens.
//
// A raw token may carry a ligature/alternative tail after "<->" and the
// paragraph-end and drawing-interruption markers "<$>" and "<%>". Word keeps
// the base reading only. An empty result means the token should be dropped.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marker is the placeholder for an illegible glyph inside a token.
const Marker = '?'

const (
	altSeparator = "<->"
	paragraphEnd = "<$>"
	interruption = "<%>"
)

// Word returns the normalized form of a raw token.
func Word(raw string) string {
	base, _, _ := strings.Cut(raw, altSeparator)
	base = strings.ReplaceAll(base, paragraphEnd, "")
	base = strings.ReplaceAll(base, interruption, "")
	return norm.NFC.String(base)
}

// Words normalizes a token list and drops tokens that normalize to "".
func Words(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if cw := Word(w); cw != "" {
			out = append(out, cw)
		}
	}
	return out
}

// HasMarker reports whether a normalized token contains an uncertain glyph.
func HasMarker(word string) bool {
	return strings.ContainsRune(word, Marker)
}

// CountMarkers returns the number of uncertain glyphs in word.
func CountMarkers(word string) int {
	return strings.Count(word, string(Marker))
}
