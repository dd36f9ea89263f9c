package artifact

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voynich/internal/resolver"
)

func sampleResults() Results {
	next := "chol"
	return Results{
		RunID:     "5f1c0a9e-1d6b-4d57-9b33-0c2f4d1b7a10",
		Group:     "a",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Occurrences: []resolver.Occurrence{
			{
				PageID: "f1r", LineID: "f1r.2", TokenIdx: 1,
				Raw: "dai?n", Clean: "dai?n", Currier: "a", Next: &next,
				Candidates: []resolver.Candidate{
					{Form: "daiin", Score: 1.2, Freq: 40, WordPrior: 1, ConfAbs: 1, ConfGap: resolver.Gap(math.Inf(1))},
				},
			},
			{PageID: "f2v", Raw: "q???", Clean: "q???", Currier: "a", Candidates: []resolver.Candidate{}},
		},
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("out/ambiguous_a.json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	f, err = FormatOf("out/ambiguous_a.msgpack.zst")
	require.NoError(t, err)
	assert.Equal(t, MsgpackZstd, f)

	_, err = FormatOf("out/ambiguous_a.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".msgpack.zst"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "results"+ext)
			in := sampleResults()
			require.NoError(t, Save(path, in))

			var out Results
			require.NoError(t, Load(path, &out))

			assert.Equal(t, in.RunID, out.RunID)
			assert.Equal(t, in.Group, out.Group)
			assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
			require.Len(t, out.Occurrences, 2)

			first := out.Occurrences[0]
			assert.Equal(t, "dai?n", first.Clean)
			assert.Nil(t, first.Prev)
			require.NotNil(t, first.Next)
			assert.Equal(t, "chol", *first.Next)
			require.Len(t, first.Candidates, 1)
			assert.Equal(t, in.Occurrences[0].Candidates[0].Form, first.Candidates[0].Form)
			assert.Equal(t, 40, first.Candidates[0].Freq)
			assert.True(t, math.IsInf(float64(first.Candidates[0].ConfGap), 1))

			assert.Empty(t, out.Occurrences[1].Candidates)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestSave_JSONIsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	require.NoError(t, Save(path, sampleResults()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "\n  \"run_id\"")
	assert.Contains(t, s, `"conf_gap": "Infinity"`)
	assert.Contains(t, s, `"candidates": []`)
	assert.Contains(t, s, `"prev": null`)
}

func TestSave_UnknownFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "r.txt"), sampleResults())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	var out Results
	assert.Error(t, Load(filepath.Join(dir, "missing.json"), &out))

	bad := filepath.Join(dir, "bad.msgpack.zst")
	require.NoError(t, os.WriteFile(bad, []byte("not zstd"), 0o644))
	assert.Error(t, Load(bad, &out))
}

func TestSaveResultsAndMapping(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveResults(dir, MsgpackZstd, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ambiguous_a.msgpack.zst"), path)

	m := resolver.NewMapping()
	m.Set("dai?n", resolver.Candidate{Form: "daiin", ConfAbs: 1, ConfGap: resolver.Gap(math.Inf(1))})
	m.Set("ch?l", resolver.Candidate{Form: "chol", ConfAbs: 0.8, ConfGap: 3})

	path, err = SaveMapping(dir, "a", m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mapping_a.json"), path)

	back := resolver.NewMapping()
	require.NoError(t, Load(path, back))
	assert.Equal(t, []string{"dai?n", "ch?l"}, back.Keys())
}
