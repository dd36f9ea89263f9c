package store

import (
	"context"
	"math"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voynich/internal/resolver"
)

func newStore(t *testing.T) (*MappingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestMappingStore_SaveLoad(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	m := resolver.NewMapping()
	m.Set("s?y", resolver.Candidate{Form: "shy", ConfAbs: 0.7, ConfGap: 3})
	m.Set("d?in", resolver.Candidate{Form: "daiin", Freq: 12, ConfAbs: 1, ConfGap: resolver.Gap(math.Inf(1))})
	require.NoError(t, s.Save(ctx, "a", m))
	assert.True(t, mr.Exists("voynich:mapping:a"))

	got, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"d?in", "s?y"}, got.Keys())
	c, ok := got.Get("d?in")
	require.True(t, ok)
	assert.Equal(t, "daiin", c.Form)
	assert.Equal(t, 12, c.Freq)
	assert.True(t, math.IsInf(float64(c.ConfGap), 1))

	// Save replaces rather than merges.
	small := resolver.NewMapping()
	small.Set("o?", resolver.Candidate{Form: "ol", ConfAbs: 1, ConfGap: 2})
	require.NoError(t, s.Save(ctx, "a", small))
	got, err = s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"o?"}, got.Keys())

	require.NoError(t, s.Save(ctx, "a", resolver.NewMapping()))
	assert.False(t, mr.Exists("voynich:mapping:a"))
}

func TestMappingStore_PutGetRemove(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "b", "ch?")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "b", "ch?", resolver.Candidate{Form: "chy", ConfAbs: 0.6, ConfGap: 2}))
	c, ok, err := s.Get(ctx, "b", "ch?")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "chy", c.Form)

	removed, err := s.Remove(ctx, "b", "ch?")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, "b", "ch?")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMappingStore_GroupsAreSeparate(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "", "o?", resolver.Candidate{Form: "ol"}))
	assert.True(t, mr.Exists("voynich:mapping:all"))

	other := s.WithPrefix("test:")
	require.NoError(t, other.Put(ctx, "a", "o?", resolver.Candidate{Form: "or"}))
	assert.True(t, mr.Exists("test:a"))

	empty, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestMappingStore_CorruptEntry(t *testing.T) {
	s, mr := newStore(t)
	mr.HSet("voynich:mapping:a", "o?", "{not json")

	_, err := s.Load(context.Background(), "a")
	assert.Error(t, err)
	_, _, err = s.Get(context.Background(), "a", "o?")
	assert.Error(t, err)
}

func TestMappingStore_Unavailable(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()
	_, err := s.Load(context.Background(), "a")
	assert.Error(t, err)
}
