package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"voynich/internal/corpus"
	"voynich/internal/currier"
	"voynich/internal/normalize"
	"voynich/internal/resolver"
	"voynich/internal/stats"
	"voynich/internal/store"
)

// Server exposes the resolver over HTTP. Models are built lazily per group
// and kept in an LRU.
type Server struct {
	corpus   *corpus.Corpus
	filter   currier.Filter
	resolver *resolver.Resolver
	store    *store.MappingStore
	log      *slog.Logger

	models *lru.Cache[string, *resolver.Model]
	builds singleflight.Group

	mappingProb, mappingGap float64
}

// ServerOptions carries the thresholds used when building mappings.
type ServerOptions struct {
	CacheSize   int
	MappingProb float64
	MappingGap  float64
}

// NewServer wires a server. st may be nil, in which case the mapping
// endpoints answer 503.
func NewServer(c *corpus.Corpus, filter currier.Filter, r *resolver.Resolver, st *store.MappingStore, opts ServerOptions, log *slog.Logger) (*Server, error) {
	cache, err := lru.New[string, *resolver.Model](opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Server{
		corpus:      c,
		filter:      filter,
		resolver:    r,
		store:       st,
		log:         log,
		models:      cache,
		mappingProb: opts.MappingProb,
		mappingGap:  opts.MappingGap,
	}, nil
}

// Model returns the cached model of group, building it on first use.
func (s *Server) Model(group string) *resolver.Model {
	group = groupKey(group)
	if m, ok := s.models.Get(group); ok {
		return m
	}
	v, _, _ := s.builds.Do(group, func() (any, error) {
		m := s.resolver.Model(s.corpus.Pages, group)
		s.models.Add(group, m)
		s.log.Info("model built", slog.String("group", group), slog.Int("vocab", len(m.WordCounts)))
		return m, nil
	})
	return v.(*resolver.Model)
}

func groupKey(group string) string {
	if g := currier.Group(group); g != "" {
		return g
	}
	return "all"
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/v1/mapping/{group}", s.handleGetMapping)
	mux.HandleFunc("POST /api/v1/mapping/{group}", s.handleBuildMapping)
	mux.HandleFunc("DELETE /api/v1/mapping/{group}/{form}", s.handleDeleteMapping)
	mux.HandleFunc("GET /api/v1/pages/{n}", s.handlePage)
	mux.HandleFunc("GET /api/v1/stats/{group}", s.handleStats)
	return mux
}

type resolveRequest struct {
	Group string `json:"group"`
	Text  string `json:"text"`
}

type resolvedToken struct {
	Index      int                  `json:"index"`
	Token      string               `json:"token"`
	Candidates []resolver.Candidate `json:"candidates"`
}

type resolveResponse struct {
	Group     string          `json:"group"`
	Original  string          `json:"original"`
	Corrected string          `json:"corrected"`
	Tokens    []resolvedToken `json:"tokens"`
}

// splitText breaks free text into transcription words on whitespace and
// the IVTFF word separator.
func splitText(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	group := groupKey(req.Group)
	m := s.Model(group)
	words := normalize.Words(splitText(req.Text))

	resp := resolveResponse{Group: group, Original: req.Text, Tokens: []resolvedToken{}}
	best := make(map[string]resolver.Candidate)
	for i, w := range words {
		if !normalize.HasMarker(w) {
			continue
		}
		var prev, next *string
		if i > 0 {
			prev = &words[i-1]
		}
		if i+1 < len(words) {
			next = &words[i+1]
		}
		cands := s.resolver.Resolve(m, w, prev, next)
		if len(cands) > 0 {
			best[w] = cands[0]
		}
		resp.Tokens = append(resp.Tokens, resolvedToken{Index: i, Token: w, Candidates: cands})
	}

	sub := resolver.NewSubstituter(resolver.LookupFunc(func(form string) (resolver.Candidate, bool) {
		c, ok := best[form]
		return c, ok
	}), resolver.DefaultSubstituteProb, resolver.DefaultSubstituteGap)
	resp.Corrected = strings.Join(sub.Words(words), " ")

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "mapping store is not configured")
		return
	}
	m, err := s.store.Load(r.Context(), groupKey(r.PathValue("group")))
	if err != nil {
		s.log.Error("load mapping", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleBuildMapping(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "mapping store is not configured")
		return
	}
	group := groupKey(r.PathValue("group"))
	m := s.Model(group)
	occs := resolver.Locate(s.corpus.Pages, group, s.filter)
	if err := s.resolver.ResolveAll(r.Context(), m, occs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	mapping := resolver.BuildMapping(occs, s.mappingProb, s.mappingGap)
	if err := s.store.Save(r.Context(), group, mapping); err != nil {
		s.log.Error("save mapping", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"group":       group,
		"occurrences": len(occs),
		"mapped":      mapping.Len(),
	})
}

func (s *Server) handleDeleteMapping(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "mapping store is not configured")
		return
	}
	form := r.PathValue("form")
	if form == "" {
		writeError(w, http.StatusBadRequest, "form is required")
		return
	}
	removed, err := s.store.Remove(r.Context(), groupKey(r.PathValue("group")), form)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page number must be an integer")
		return
	}
	id, err := s.corpus.ResolvePage(n)
	if errors.Is(err, corpus.ErrPageOutOfRange) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	cleaned := r.URL.Query().Get("cleaned") == "true"
	text, err := s.corpus.PlainText(id, cleaned)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": n, "id": id, "text": text})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	top := 50
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}
	group := groupKey(r.PathValue("group"))
	writeJSON(w, http.StatusOK, stats.Summarize(s.corpus.Pages, group, s.filter, true, top))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
