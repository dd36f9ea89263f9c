package resolver

import (
	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/internal/normalize"
)

type token struct {
	raw      string
	clean    string
	lineIdx  int
	lineID   string
	tokenIdx int
}

func flatten(para corpus.Paragraph) []token {
	var out []token
	for li, line := range para {
		for ti, raw := range line.Words {
			out = append(out, token{
				raw:      raw,
				clean:    normalize.Word(raw),
				lineIdx:  li,
				lineID:   line.ID,
				tokenIdx: ti,
			})
		}
	}
	return out
}

// Locate lists every token containing an uncertainty marker in the pages
// selected by filter, in reading order, labelled with the requested group.
// Neighbours are taken from all tokens of the paragraph, not only ambiguous
// ones; a missing or empty neighbour is nil.
func Locate(pages []corpus.Page, group string, filter currier.Filter) []Occurrence {
	var out []Occurrence
	for _, page := range currier.Select(filter, group, pages) {
		for pi, para := range page.Paragraphs {
			toks := flatten(para)
			for i, t := range toks {
				if t.clean == "" || !normalize.HasMarker(t.clean) {
					continue
				}
				occ := Occurrence{
					PageID:       page.ID,
					ParagraphIdx: pi,
					LineIdx:      t.lineIdx,
					LineID:       t.lineID,
					TokenIdx:     t.tokenIdx,
					Raw:          t.raw,
					Clean:        t.clean,
					Currier:      group,
					Candidates:   []Candidate{},
				}
				if i > 0 {
					occ.Prev = neighbour(toks[i-1].clean)
				}
				if i+1 < len(toks) {
					occ.Next = neighbour(toks[i+1].clean)
				}
				out = append(out, occ)
			}
		}
	}
	return out
}

func neighbour(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
