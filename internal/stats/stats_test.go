package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voynich/internal/corpus"
)

type onlyFilter map[string]struct{}

func (f onlyFilter) Keep(group string, _ []string) (map[string]struct{}, bool) {
	if group != "a" {
		return nil, false
	}
	return f, true
}

func testPages() []corpus.Page {
	return []corpus.Page{
		{ID: "f1r", Paragraphs: []corpus.Paragraph{
			{{ID: "f1r.1", Words: []string{"daiin", "chol"}}, {ID: "f1r.2", Words: []string{"daiin"}}},
			{{ID: "f1r.3", Words: []string{"qokeey", "<%>", "dy"}}},
		}},
		{ID: "f2r", Paragraphs: []corpus.Paragraph{
			{{ID: "f2r.1", Words: []string{"chedy", "chedy"}}},
		}},
	}
}

func TestParagraphs(t *testing.T) {
	raw := Paragraphs(testPages(), "", nil, false)
	require.Len(t, raw, 3)
	assert.Equal(t, []string{"daiin", "chol", "daiin"}, raw[0])
	assert.Equal(t, []string{"qokeey", "<%>", "dy"}, raw[1])

	clean := Paragraphs(testPages(), "", nil, true)
	assert.Equal(t, []string{"qokeey", "dy"}, clean[1])

	onlyA := Paragraphs(testPages(), "a", onlyFilter{"f2r": {}}, true)
	assert.Equal(t, [][]string{{"chedy", "chedy"}}, onlyA)
}

func TestCounters(t *testing.T) {
	paras := Paragraphs(testPages(), "", nil, true)

	counts := WordCounts(paras)
	assert.Equal(t, map[string]int{"daiin": 2, "chol": 1, "qokeey": 1, "dy": 1, "chedy": 2}, counts)

	bigrams := WordBigrams(paras)
	assert.Equal(t, 1, bigrams["daiin chol"])
	assert.Equal(t, 1, bigrams["chol daiin"])
	assert.Equal(t, 1, bigrams["chedy chedy"])
	assert.Zero(t, bigrams["daiin qokeey"], "no pairs across paragraphs")

	assert.Equal(t, map[int]int{5: 4, 4: 1, 6: 1, 2: 1}, WordLengths(paras))

	tri := CharNgrams(paras, 3)
	assert.Equal(t, 2, tri["che"])
	assert.Empty(t, CharNgrams(paras, 0))
}

func TestEdgeNgrams(t *testing.T) {
	paras := [][]string{{"daiin", "dain", "o", "chol"}}
	assert.Equal(t, map[string]int{"da": 2, "ch": 1}, EdgeNgrams(paras, 2, Start))
	assert.Equal(t, map[string]int{"in": 2, "ol": 1}, EdgeNgrams(paras, 2, End))
}

func TestTypeTokenRatio(t *testing.T) {
	assert.Zero(t, TypeTokenRatio(nil))
	assert.InDelta(t, 0.5, TypeTokenRatio(map[string]int{"a": 3, "b": 1}), 1e-12)
}

func TestTopAndZipf(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}
	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, Top(counts, 3))
	assert.Len(t, Top(counts, 0), 4)

	assert.Equal(t, []ZipfPoint{{1, 5}, {2, 2}}, Zipf(counts, 2))
}

func TestSummarize(t *testing.T) {
	s := Summarize(testPages(), "", nil, true, 3)
	assert.Equal(t, 7, s.Tokens)
	assert.Equal(t, 5, s.Types)
	assert.InDelta(t, 5.0/7.0, s.TypeTokenRatio, 1e-12)
	assert.Equal(t, "chedy", s.TopWords[0].Key)
	assert.Len(t, s.TopWords, 3)
	assert.Len(t, s.Zipf, 3)
	assert.Equal(t, "ch", s.StartBigrams[0].Key)

	empty := Summarize(nil, "b", nil, true, 3)
	assert.Zero(t, empty.Tokens)
	assert.Zero(t, empty.TypeTokenRatio)
	assert.Empty(t, empty.TopWords)
}
