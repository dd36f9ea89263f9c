package resolver

import (
	"sort"

	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/internal/normalize"
	"voynich/pkg/options"
)

const (
	topCharCount   = 6
	topBigramCount = 10
)

// charOrders are the character n-gram sizes the model counts.
var charOrders = []int{2, 3}

// Bigram is an ordered pair of adjacent words inside one paragraph.
type Bigram struct {
	Left, Right string
}

// Model is a frequency snapshot of one filtered corpus subset. It is never
// mutated after BuildModel returns and may be read concurrently.
type Model struct {
	Group        string
	WordCounts   map[string]int
	WordBigrams  map[Bigram]int
	CharNgrams   map[int]map[string]int
	CharTotals   map[int]int
	CharVocab    map[rune]int
	CoreVocab    map[string]struct{}
	CoreList     []string // CoreVocab by descending frequency
	TopChars     []string
	TopBigrams   []string
	Lexicon      *DeletionLexicon
	TokenTotal   int
	MaxWordCount int
	BigramTotal  int

	opts options.ResolverOptions
}

// BuildModel counts words, paragraph-internal word bigrams and in-word
// character n-grams over the pages selected by filter for group.
func BuildModel(pages []corpus.Page, group string, filter currier.Filter, opts ...options.Options) *Model {
	o := options.Resolve(opts...)
	m := &Model{
		Group:       group,
		WordCounts:  make(map[string]int),
		WordBigrams: make(map[Bigram]int),
		CharNgrams:  make(map[int]map[string]int, len(charOrders)),
		CharTotals:  make(map[int]int, len(charOrders)),
		CharVocab:   make(map[rune]int),
		opts:        o,
	}
	for _, n := range charOrders {
		m.CharNgrams[n] = make(map[string]int)
	}

	for _, page := range currier.Select(filter, group, pages) {
		for _, para := range page.Paragraphs {
			tokens := paragraphTokens(para, o.Normalize)
			for i, w := range tokens {
				m.WordCounts[w]++
				if i > 0 {
					m.WordBigrams[Bigram{tokens[i-1], w}]++
				}
				m.countChars(w)
			}
		}
	}

	for _, c := range m.WordCounts {
		m.TokenTotal += c
		if c > m.MaxWordCount {
			m.MaxWordCount = c
		}
	}
	for _, c := range m.WordBigrams {
		m.BigramTotal += c
	}
	for n, grams := range m.CharNgrams {
		for _, c := range grams {
			m.CharTotals[n] += c
		}
	}

	m.CoreList = coreVocab(m.WordCounts, o.CoreQuantile)
	m.CoreVocab = make(map[string]struct{}, len(m.CoreList))
	for _, w := range m.CoreList {
		m.CoreVocab[w] = struct{}{}
	}
	m.Lexicon = BuildDeletionLexicon(m.CoreList)

	chars := make(map[string]int, len(m.CharVocab))
	for r, c := range m.CharVocab {
		chars[string(r)] = c
	}
	m.TopChars = mostCommon(chars, topCharCount)
	m.TopBigrams = mostCommon(m.CharNgrams[2], topBigramCount)
	return m
}

func (m *Model) countChars(w string) {
	runes := []rune(w)
	for _, r := range runes {
		m.CharVocab[r]++
	}
	for _, n := range charOrders {
		for i := 0; i+n <= len(runes); i++ {
			m.CharNgrams[n][string(runes[i:i+n])]++
		}
	}
}

// Options returns the options the model was built with.
func (m *Model) Options() options.ResolverOptions { return m.opts }

func paragraphTokens(para corpus.Paragraph, normalized bool) []string {
	var tokens []string
	for _, line := range para {
		for _, w := range line.Words {
			if normalized {
				w = normalize.Word(w)
			}
			if w != "" {
				tokens = append(tokens, w)
			}
		}
	}
	return tokens
}

// coreVocab returns the shortest most-frequent prefix of words whose counts
// reach quantile × total.
func coreVocab(counts map[string]int, quantile float64) []string {
	total := 0
	for _, c := range counts {
		total += c
	}
	cutoff := float64(total) * quantile
	var vocab []string
	accum := 0
	for _, w := range mostCommon(counts, 0) {
		vocab = append(vocab, w)
		accum += counts[w]
		if float64(accum) >= cutoff {
			break
		}
	}
	return vocab
}

// mostCommon ranks keys by count descending, ties lexicographically.
// limit <= 0 returns every key.
func mostCommon(counts map[string]int, limit int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] == counts[keys[j]] {
			return keys[i] < keys[j]
		}
		return counts[keys[i]] > counts[keys[j]]
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
