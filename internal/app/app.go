package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"voynich/internal/config"
	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/internal/store"
)

// NewFilter picks the group filter for c: the $L labels of the transcript
// when present, the static folio ranges otherwise or when forced.
func NewFilter(cfg config.CorpusConfig, c *corpus.Corpus, log *slog.Logger) currier.Filter {
	if cfg.Ranges {
		return currier.NewRangeFilter(log)
	}
	return currier.New(c.CurrierIndex(), log)
}

// Groups returns the configured group labels, lowercased and deduplicated.
func Groups(cfg config.CorpusConfig) []string {
	seen := make(map[string]struct{}, len(cfg.Groups))
	var out []string
	for _, g := range cfg.Groups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// OpenStore connects to Redis when configured. It returns nil, nil when
// Redis is disabled.
func OpenStore(ctx context.Context, cfg config.RedisConfig) (*store.MappingStore, func() error, error) {
	if !cfg.Enabled() {
		return nil, func() error { return nil }, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	st := store.New(client)
	if cfg.Prefix != "" {
		st = st.WithPrefix(cfg.Prefix)
	}
	return st, client.Close, nil
}
