package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"voynich/internal/artifact"
	"voynich/internal/config"
	"voynich/internal/corpus"
	"voynich/internal/resolver"
	"voynich/internal/stats"
	"voynich/internal/store"
)

// GroupReport summarizes what a batch run produced for one group.
type GroupReport struct {
	Occurrences int      `json:"occurrences"`
	Resolved    int      `json:"resolved"`
	Mapped      int      `json:"mapped"`
	Files       []string `json:"files"`
}

// Report is the outcome of RunBatch.
type Report struct {
	RunID  string                 `json:"run_id"`
	Pages  int                    `json:"pages"`
	Groups map[string]GroupReport `json:"groups"`
}

// RunBatch parses the corpus, analyzes every configured group and writes
// results, substitution mappings and statistics to the output directory.
// When st is non-nil each group's mapping is also pushed to Redis.
func RunBatch(ctx context.Context, cfg *config.Config, log *slog.Logger, st *store.MappingStore) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log = log.With(slog.String("run_id", runID))

	c, err := corpus.Open(cfg.Corpus.Path, log)
	if err != nil {
		return nil, err
	}
	log.Info("corpus loaded", slog.String("path", cfg.Corpus.Path), slog.Int("pages", len(c.Pages)))

	format := artifact.JSON
	if strings.EqualFold(cfg.Output.Format, "msgpack") {
		format = artifact.MsgpackZstd
	}
	// always JSON so corpus.Open can read it back
	pagesPath := filepath.Join(cfg.Output.Dir, "pages.json")
	if err := artifact.Save(pagesPath, c); err != nil {
		return nil, err
	}

	filter := NewFilter(cfg.Corpus, c, log)
	r := resolver.New(filter, log, cfg.Resolver.Options()...)
	groups := Groups(cfg.Corpus)

	results, err := r.AnalyzeGroups(ctx, c.Pages, groups...)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	rep := &Report{RunID: runID, Pages: len(c.Pages), Groups: make(map[string]GroupReport, len(groups))}
	for _, g := range groups {
		occs := results[g]
		gr := GroupReport{Occurrences: len(occs), Files: []string{pagesPath}}
		for _, o := range occs {
			if len(o.Candidates) > 0 {
				gr.Resolved++
			}
		}

		path, err := artifact.SaveResults(cfg.Output.Dir, format, artifact.Results{
			RunID:       runID,
			Group:       g,
			CreatedAt:   time.Now().UTC(),
			Occurrences: occs,
		})
		if err != nil {
			return nil, err
		}
		gr.Files = append(gr.Files, path)

		mapping := resolver.BuildMapping(occs, cfg.Resolver.MappingProb, cfg.Resolver.MappingGap)
		gr.Mapped = mapping.Len()
		path, err = artifact.SaveMapping(cfg.Output.Dir, g, mapping)
		if err != nil {
			return nil, err
		}
		gr.Files = append(gr.Files, path)

		if st != nil {
			if err := st.Save(ctx, g, mapping); err != nil {
				return nil, fmt.Errorf("store mapping %s: %w", g, err)
			}
		}

		if cfg.Output.Stats {
			path = filepath.Join(cfg.Output.Dir, "stats_"+g+".json")
			if err := artifact.Save(path, stats.Summarize(c.Pages, g, filter, true, cfg.Output.TopN)); err != nil {
				return nil, err
			}
			gr.Files = append(gr.Files, path)
		}

		rep.Groups[g] = gr
		log.Info("group written",
			slog.String("group", g),
			slog.Int("occurrences", gr.Occurrences),
			slog.Int("resolved", gr.Resolved),
			slog.Int("mapped", gr.Mapped),
		)
	}

	log.Info("batch finished", slog.Duration("took", time.Since(start)))
	return rep, nil
}
