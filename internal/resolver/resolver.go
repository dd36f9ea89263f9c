package resolver

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/pkg/options"
)

// Resolver builds per-group models and resolves the ambiguous tokens of
// that group against them.
type Resolver struct {
	filter currier.Filter
	opts   options.ResolverOptions
	raw    []options.Options
	log    *slog.Logger
}

func New(filter currier.Filter, log *slog.Logger, opts ...options.Options) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		filter: filter,
		opts:   options.Resolve(opts...),
		raw:    opts,
		log:    log,
	}
}

// Options returns the effective resolver options.
func (r *Resolver) Options() options.ResolverOptions { return r.opts }

// Model builds a fresh model over the pages the filter keeps for group.
func (r *Resolver) Model(pages []corpus.Page, group string) *Model {
	return BuildModel(pages, group, r.filter, r.raw...)
}

// Analyze locates every ambiguous token of group and attaches its ranked,
// frequency-filtered candidates.
func (r *Resolver) Analyze(ctx context.Context, pages []corpus.Page, group string) ([]Occurrence, error) {
	start := time.Now()
	m := r.Model(pages, group)
	occs := Locate(pages, group, r.filter)
	if err := r.ResolveAll(ctx, m, occs); err != nil {
		return nil, err
	}

	resolved := 0
	for _, o := range occs {
		if len(o.Candidates) > 0 {
			resolved++
		}
	}
	r.log.Info("group analyzed",
		slog.String("group", group),
		slog.Int("tokens", m.TokenTotal),
		slog.Int("vocab", len(m.WordCounts)),
		slog.Int("core_vocab", len(m.CoreList)),
		slog.Int("ambiguous", len(occs)),
		slog.Int("resolved", resolved),
		slog.Duration("took", time.Since(start)),
	)
	return occs, nil
}

// ResolveAll fills Candidates of every occurrence in place. Occurrences are
// independent, so they are scored in parallel; each goroutine writes only
// its own slot.
func (r *Resolver) ResolveAll(ctx context.Context, m *Model, occs []Occurrence) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.WorkerCount())
	for i := range occs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			occs[i].Candidates = r.Resolve(m, occs[i].Clean, occs[i].Prev, occs[i].Next)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Resolve ranks the candidates for a single token, drops those seen fewer
// than FreqMin times and keeps the TopK best. The result is never nil.
func (r *Resolver) Resolve(m *Model, token string, prev, next *string) []Candidate {
	ranked := m.ScoreAll(token, prev, next)
	out := make([]Candidate, 0, min(len(ranked), max(r.opts.TopK, 0)))
	for _, c := range ranked {
		if c.Freq < r.opts.FreqMin {
			continue
		}
		if len(out) >= r.opts.TopK {
			break
		}
		out = append(out, c)
	}
	return out
}

// AnalyzeGroups runs Analyze for each group concurrently. Every group gets
// its own model.
func (r *Resolver) AnalyzeGroups(ctx context.Context, pages []corpus.Page, groups ...string) (map[string][]Occurrence, error) {
	results := make([][]Occurrence, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			occs, err := r.Analyze(ctx, pages, group)
			if err != nil {
				return err
			}
			results[i] = occs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string][]Occurrence, len(groups))
	for i, group := range groups {
		out[group] = results[i]
	}
	return out, nil
}
