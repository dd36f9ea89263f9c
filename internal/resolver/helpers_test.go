package resolver

import (
	"io"
	"log/slog"
	"strings"

	"voynich/internal/corpus"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// page builds a single-line-per-paragraph page from space-separated text.
func page(id, currier string, paragraphs ...string) corpus.Page {
	p := corpus.Page{ID: id, Currier: currier}
	for i, text := range paragraphs {
		p.Paragraphs = append(p.Paragraphs, corpus.Paragraph{{
			ID:    id + "." + string(rune('1'+i)),
			Words: strings.Fields(text),
		}})
	}
	return p
}

// toyPages is the two-paragraph corpus ["the cat sat", "the dog sat"].
func toyPages() []corpus.Page {
	return []corpus.Page{page("f1r", "A", "the cat sat", "the dog sat")}
}

func strPtr(s string) *string { return &s }

func forms(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Form
	}
	return out
}

type stubFilter map[string][]string

func (f stubFilter) Keep(group string, _ []string) (map[string]struct{}, bool) {
	ids, ok := f[group]
	if !ok {
		return nil, false
	}
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	return keep, true
}
