// Package stats computes descriptive word statistics over a filtered set of
// pages.
package stats

import (
	"sort"

	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/internal/normalize"
)

// Edge selects which end of a word edge n-grams are taken from.
type Edge int

const (
	Start Edge = iota
	End
)

// Count is one entry of a frequency ranking.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ZipfPoint is the frequency of the word at a given 1-based rank.
type ZipfPoint struct {
	Rank int `json:"rank"`
	Freq int `json:"freq"`
}

// Summary is the report written next to the analysis artifacts.
type Summary struct {
	Group          string      `json:"group"`
	Tokens         int         `json:"tokens"`
	Types          int         `json:"types"`
	TypeTokenRatio float64     `json:"type_token_ratio"`
	WordLengths    map[int]int `json:"word_lengths"`
	TopWords       []Count     `json:"top_words"`
	TopBigrams     []Count     `json:"top_word_bigrams"`
	TopCharBigrams []Count     `json:"top_char_bigrams"`
	StartBigrams   []Count     `json:"start_bigrams"`
	EndBigrams     []Count     `json:"end_bigrams"`
	Zipf           []ZipfPoint `json:"zipf"`
}

// Paragraphs returns the word lists of every paragraph on the pages filter
// keeps for group. With cleaned set words are normalized and empties
// dropped.
func Paragraphs(pages []corpus.Page, group string, filter currier.Filter, cleaned bool) [][]string {
	var out [][]string
	for _, p := range currier.Select(filter, group, pages) {
		for _, para := range p.Paragraphs {
			words := para.Words()
			if cleaned {
				words = normalize.Words(words)
			}
			out = append(out, words)
		}
	}
	return out
}

func WordCounts(paras [][]string) map[string]int {
	out := make(map[string]int)
	for _, para := range paras {
		for _, w := range para {
			out[w]++
		}
	}
	return out
}

// WordBigrams counts adjacent word pairs inside each paragraph, keyed as
// "left right".
func WordBigrams(paras [][]string) map[string]int {
	out := make(map[string]int)
	for _, para := range paras {
		for i := 1; i < len(para); i++ {
			out[para[i-1]+" "+para[i]]++
		}
	}
	return out
}

// WordLengths is a histogram of word lengths in runes.
func WordLengths(paras [][]string) map[int]int {
	out := make(map[int]int)
	for _, para := range paras {
		for _, w := range para {
			out[len([]rune(w))]++
		}
	}
	return out
}

// CharNgrams counts in-word character n-grams.
func CharNgrams(paras [][]string, n int) map[string]int {
	out := make(map[string]int)
	if n <= 0 {
		return out
	}
	for _, para := range paras {
		for _, w := range para {
			r := []rune(w)
			for i := 0; i+n <= len(r); i++ {
				out[string(r[i:i+n])]++
			}
		}
	}
	return out
}

// EdgeNgrams counts the first or last n runes of every word at least n
// long.
func EdgeNgrams(paras [][]string, n int, edge Edge) map[string]int {
	out := make(map[string]int)
	if n <= 0 {
		return out
	}
	for _, para := range paras {
		for _, w := range para {
			r := []rune(w)
			if len(r) < n {
				continue
			}
			if edge == Start {
				out[string(r[:n])]++
			} else {
				out[string(r[len(r)-n:])]++
			}
		}
	}
	return out
}

// TypeTokenRatio is distinct words over total words, 0 for no words.
func TypeTokenRatio(counts map[string]int) float64 {
	tokens := 0
	for _, c := range counts {
		tokens += c
	}
	if tokens == 0 {
		return 0
	}
	return float64(len(counts)) / float64(tokens)
}

// Top ranks counts descending, ties by key. n <= 0 returns everything.
func Top(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for k, c := range counts {
		out = append(out, Count{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Key < out[j].Key
		}
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Zipf returns the rank/frequency series of the topN most frequent words.
func Zipf(counts map[string]int, topN int) []ZipfPoint {
	top := Top(counts, topN)
	out := make([]ZipfPoint, len(top))
	for i, c := range top {
		out[i] = ZipfPoint{Rank: i + 1, Freq: c.Count}
	}
	return out
}

// Summarize builds the full report for one group.
func Summarize(pages []corpus.Page, group string, filter currier.Filter, cleaned bool, topN int) Summary {
	paras := Paragraphs(pages, group, filter, cleaned)
	counts := WordCounts(paras)
	s := Summary{
		Group:          group,
		Types:          len(counts),
		TypeTokenRatio: TypeTokenRatio(counts),
		WordLengths:    WordLengths(paras),
		TopWords:       Top(counts, topN),
		TopBigrams:     Top(WordBigrams(paras), topN),
		TopCharBigrams: Top(CharNgrams(paras, 2), topN),
		StartBigrams:   Top(EdgeNgrams(paras, 2, Start), topN),
		EndBigrams:     Top(EdgeNgrams(paras, 2, End), topN),
		Zipf:           Zipf(counts, topN),
	}
	for _, c := range counts {
		s.Tokens += c
	}
	return s
}
