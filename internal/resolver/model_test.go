package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voynich/internal/corpus"
	"voynich/pkg/options"
)

func TestBuildModel_Counts(t *testing.T) {
	m := BuildModel(toyPages(), "", nil)

	assert.Equal(t, map[string]int{"the": 2, "cat": 1, "sat": 2, "dog": 1}, m.WordCounts)
	assert.Equal(t, 6, m.TokenTotal)
	assert.Equal(t, 2, m.MaxWordCount)
	assert.Equal(t, 4, m.BigramTotal)
	assert.Equal(t, 1, m.WordBigrams[Bigram{"the", "cat"}])
	assert.Equal(t, 1, m.WordBigrams[Bigram{"dog", "sat"}])
	assert.Zero(t, m.WordBigrams[Bigram{"sat", "the"}], "bigrams never cross paragraphs")

	assert.Equal(t, 3, m.CharNgrams[2]["at"])
	assert.Equal(t, 2, m.CharNgrams[3]["the"])
	assert.Equal(t, 12, m.CharTotals[2])
	assert.Equal(t, 6, m.CharTotals[3])
	assert.Equal(t, 3, m.CharVocab['a'])

	assert.Equal(t, []string{"at", "he", "sa", "th", "ca", "do", "og"}, m.TopBigrams)
	assert.Len(t, m.TopChars, 6)
	assert.Equal(t, "t", m.TopChars[0])
}

func TestBuildModel_ShortWordsHaveNoNgrams(t *testing.T) {
	m := BuildModel([]corpus.Page{page("p", "", "a bb")}, "", nil)
	assert.Equal(t, 1, m.CharTotals[2])
	assert.Zero(t, m.CharTotals[3])
	assert.Equal(t, []string{"bb"}, m.TopBigrams)
}

func TestBuildModel_Empty(t *testing.T) {
	m := BuildModel(nil, "a", nil)
	assert.Empty(t, m.WordCounts)
	assert.Empty(t, m.CoreVocab)
	assert.Zero(t, m.MaxWordCount)
	assert.Empty(t, m.TopChars)
	assert.Empty(t, m.TopBigrams)

	c := m.Score("abc", strPtr("x"), strPtr("y"), options.DefaultWeights)
	assert.Zero(t, c.Score)
	assert.Zero(t, c.WordPrior)
	assert.Zero(t, c.CharScore)
	assert.Zero(t, c.ContextScore)
	assert.Empty(t, m.Candidates("a?c"))
}

func TestBuildModel_Normalize(t *testing.T) {
	pages := []corpus.Page{page("p", "", "ab<->cd ab <%> e<$>f")}

	raw := BuildModel(pages, "", nil)
	assert.Equal(t, 1, raw.WordCounts["ab<->cd"])

	clean := BuildModel(pages, "", nil, options.WithNormalize(true))
	assert.Equal(t, map[string]int{"ab": 2, "ef": 1}, clean.WordCounts)
	assert.Equal(t, 1, clean.WordBigrams[Bigram{"ab", "ef"}], "dropped tokens do not break adjacency")
}

func TestBuildModel_GroupFilter(t *testing.T) {
	pages := []corpus.Page{
		page("f1r", "A", "qokeey daiin"),
		page("f2r", "B", "chedy shedy"),
	}
	filter := stubFilter{"a": {"f1r"}}

	a := BuildModel(pages, "a", filter)
	assert.Equal(t, map[string]int{"qokeey": 1, "daiin": 1}, a.WordCounts)

	all := BuildModel(pages, "zz", filter)
	assert.Len(t, all.WordCounts, 4, "unknown group falls back to the whole corpus")
}

func TestCoreVocab_CoverageAndMinimality(t *testing.T) {
	counts := map[string]int{"a": 50, "b": 20, "c": 10, "d": 10, "e": 5, "f": 3, "g": 2}
	total := 100

	for _, q := range []float64{0.1, 0.5, 0.7, 0.9, 0.95, 1.0} {
		core := coreVocab(counts, q)
		require.NotEmpty(t, core)

		mass := 0
		for _, w := range core {
			mass += counts[w]
		}
		assert.GreaterOrEqual(t, float64(mass), q*float64(total), "quantile %v", q)

		last := core[len(core)-1]
		assert.Less(t, float64(mass-counts[last]), q*float64(total), "quantile %v", q)
	}
}

func TestCoreVocab_Toy(t *testing.T) {
	m := BuildModel(toyPages(), "", nil, options.WithCoreQuantile(0.9))
	assert.Equal(t, []string{"sat", "the", "cat", "dog"}, m.CoreList)

	m = BuildModel(toyPages(), "", nil, options.WithCoreQuantile(0.5))
	assert.Equal(t, []string{"sat", "the"}, m.CoreList)
}

func TestMostCommon_TiesAreLexicographic(t *testing.T) {
	got := mostCommon(map[string]int{"b": 1, "a": 1, "c": 2}, 0)
	assert.Equal(t, []string{"c", "a", "b"}, got)
	assert.Equal(t, []string{"c"}, mostCommon(map[string]int{"b": 1, "a": 1, "c": 2}, 1))
}
