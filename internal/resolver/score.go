package resolver

import (
	"math"
	"sort"

	"voynich/pkg/options"
)

// gapEpsilon keeps conf_gap finite when the runner-up underflows to zero.
const gapEpsilon = 1e-9

// Score computes the three signals for candidate and their weighted sum.
// Confidence fields are left zero until Rank is called on the full list.
func (m *Model) Score(candidate string, prev, next *string, w options.Weights) Candidate {
	c := Candidate{
		Form:         candidate,
		Freq:         m.WordCounts[candidate],
		WordPrior:    m.wordPrior(candidate),
		CharScore:    m.charScore(candidate),
		ContextScore: m.contextScore(candidate, prev, next),
	}
	c.Score = w.Prior*c.WordPrior + w.Char*c.CharScore + w.Context*c.ContextScore
	return c
}

func (m *Model) wordPrior(w string) float64 {
	if m.MaxWordCount == 0 {
		return 0
	}
	return float64(m.WordCounts[w]) / float64(m.MaxWordCount)
}

func (m *Model) charScore(w string) float64 {
	// a model without characters scores nothing
	if len(m.CharVocab) == 0 {
		return 0
	}
	runes := []rune(w)
	k := m.opts.Smoothing
	vocab := len(m.CharVocab)
	var sum float64
	var orders int
	for _, n := range charOrders {
		if len(runes) < n {
			continue
		}
		total := float64(m.CharTotals[n]) + k*float64(vocab)
		grams := m.CharNgrams[n]
		var acc float64
		var cnt int
		for i := 0; i+n <= len(runes); i++ {
			acc += (float64(grams[string(runes[i:i+n])]) + k) / total
			cnt++
		}
		sum += acc / float64(cnt)
		orders++
	}
	if orders == 0 {
		return 0
	}
	return sum / float64(orders)
}

func (m *Model) contextScore(w string, prev, next *string) float64 {
	if (prev == nil && next == nil) || m.TokenTotal == 0 {
		return 0
	}
	k := m.opts.Smoothing
	vocab := len(m.WordCounts)
	if vocab < 1 {
		vocab = 1
	}
	total := float64(m.BigramTotal) + k*float64(vocab)
	if total <= 0 {
		return 0
	}
	var score float64
	if prev != nil {
		score += (float64(m.WordBigrams[Bigram{*prev, w}]) + k) / total
	}
	if next != nil {
		score += (float64(m.WordBigrams[Bigram{w, *next}]) + k) / total
	}
	return score
}

// Rank sorts candidates by score, best first, and fills in ConfAbs (softmax
// over scores) and ConfGap (top likelihood over runner-up, shared by every
// entry).
func Rank(cands []Candidate) {
	if len(cands) == 0 {
		return
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Form < cands[j].Form
		}
		return cands[i].Score > cands[j].Score
	})

	top := cands[0].Score
	exps := make([]float64, len(cands))
	var sum float64
	for i, c := range cands {
		exps[i] = math.Exp(c.Score - top)
		sum += exps[i]
	}
	gap := Gap(math.Inf(1))
	if len(cands) > 1 {
		gap = Gap(exps[0] / (exps[1] + gapEpsilon))
	}
	for i := range cands {
		cands[i].ConfAbs = exps[i] / sum
		cands[i].ConfGap = gap
	}
}

// ScoreAll scores and ranks every candidate the model proposes for token.
func (m *Model) ScoreAll(token string, prev, next *string) []Candidate {
	forms := m.Candidates(token)
	out := make([]Candidate, 0, len(forms))
	for _, f := range forms {
		out = append(out, m.Score(f, prev, next, m.opts.Weights))
	}
	Rank(out)
	return out
}
