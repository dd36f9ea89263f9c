package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"voynich/internal/resolver"
)

const defaultPrefix = "voynich:mapping:"

// MappingStore keeps one Redis hash per group: clean form -> JSON candidate.
type MappingStore struct {
	client *redis.Client
	prefix string
}

// New creates a MappingStore with the provided Redis client.
func New(client *redis.Client) *MappingStore {
	return &MappingStore{client: client, prefix: defaultPrefix}
}

// WithPrefix returns a copy storing its hashes under prefix.
func (s *MappingStore) WithPrefix(prefix string) *MappingStore {
	return &MappingStore{client: s.client, prefix: prefix}
}

func (s *MappingStore) key(group string) string {
	if group == "" {
		group = "all"
	}
	return s.prefix + group
}

// Save replaces the stored mapping of group with m.
func (s *MappingStore) Save(ctx context.Context, group string, m *resolver.Mapping) error {
	fields := make(map[string]any, m.Len())
	for _, form := range m.Keys() {
		c, _ := m.Get(form)
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode %q: %w", form, err)
		}
		fields[form] = b
	}
	key := s.key(group)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		return nil
	})
	return err
}

// Put stores a single resolution.
func (s *MappingStore) Put(ctx context.Context, group, form string, c resolver.Candidate) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key(group), form, b).Err()
}

// Get returns the stored resolution of form.
func (s *MappingStore) Get(ctx context.Context, group, form string) (resolver.Candidate, bool, error) {
	raw, err := s.client.HGet(ctx, s.key(group), form).Bytes()
	if errors.Is(err, redis.Nil) {
		return resolver.Candidate{}, false, nil
	}
	if err != nil {
		return resolver.Candidate{}, false, err
	}
	var c resolver.Candidate
	if err := json.Unmarshal(raw, &c); err != nil {
		return resolver.Candidate{}, false, fmt.Errorf("decode %q: %w", form, err)
	}
	return c, true, nil
}

// Remove deletes form from the group's mapping. It reports whether the
// form was present.
func (s *MappingStore) Remove(ctx context.Context, group, form string) (bool, error) {
	n, err := s.client.HDel(ctx, s.key(group), form).Result()
	return n > 0, err
}

// Load returns the group's mapping with forms in lexicographic order. A
// group with nothing stored yields an empty mapping.
func (s *MappingStore) Load(ctx context.Context, group string) (*resolver.Mapping, error) {
	all, err := s.client.HGetAll(ctx, s.key(group)).Result()
	if err != nil {
		return nil, err
	}
	forms := make([]string, 0, len(all))
	for f := range all {
		forms = append(forms, f)
	}
	sort.Strings(forms)

	m := resolver.NewMapping()
	for _, f := range forms {
		var c resolver.Candidate
		if err := json.Unmarshal([]byte(all[f]), &c); err != nil {
			return nil, fmt.Errorf("decode %q: %w", f, err)
		}
		m.Set(f, c)
	}
	return m, nil
}
