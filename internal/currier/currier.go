// Package currier selects manuscript pages by Currier language group.
//
// Two strategies sit behind Filter: MappingFilter reads a page→group map
// taken from the transcription headers, RangeFilter expands the classic
// static folio ranges. New picks the mapping when one is available.
package currier

import (
	"log/slog"
	"strings"

	"voynich/internal/corpus"
)

// Filter decides which pages belong to a group. The boolean result is false
// when no filtering should happen: an unknown group label, or a group that
// selects nothing. Callers then use the whole corpus.
type Filter interface {
	Keep(group string, ordered []string) (map[string]struct{}, bool)
}

// Group normalizes a group label to "a" or "b". Anything else yields "".
func Group(label string) string {
	switch g := strings.ToLower(strings.TrimSpace(label)); g {
	case "a", "b":
		return g
	default:
		return ""
	}
}

// New returns a MappingFilter when mapping is non-empty and a RangeFilter
// otherwise.
func New(mapping map[string]string, log *slog.Logger) Filter {
	if log == nil {
		log = slog.Default()
	}
	if len(mapping) > 0 {
		return &MappingFilter{mapping: mapping, log: log}
	}
	log.Warn("no currier mapping from transcript, using static ranges")
	return &RangeFilter{log: log}
}

// MappingFilter selects pages whose label starts with the requested group.
type MappingFilter struct {
	mapping map[string]string
	log     *slog.Logger
}

// NewMappingFilter wraps a page→label map.
func NewMappingFilter(mapping map[string]string, log *slog.Logger) *MappingFilter {
	if log == nil {
		log = slog.Default()
	}
	return &MappingFilter{mapping: mapping, log: log}
}

func (f *MappingFilter) Keep(group string, ordered []string) (map[string]struct{}, bool) {
	g := Group(group)
	if g == "" {
		f.log.Debug("unknown currier group, no filtering", slog.String("group", group))
		return nil, false
	}
	keep := make(map[string]struct{})
	for pid, label := range f.mapping {
		if strings.HasPrefix(strings.ToLower(label), g) {
			keep[pid] = struct{}{}
		}
	}
	if len(ordered) > 0 {
		inOrder := make(map[string]struct{}, len(keep))
		for _, pid := range ordered {
			if _, ok := keep[pid]; ok {
				inOrder[pid] = struct{}{}
			}
		}
		keep = inOrder
	}
	if len(keep) == 0 {
		f.log.Warn("currier group selects no pages", slog.String("group", g))
		return nil, false
	}
	return keep, true
}

// Select returns the pages filter keeps for group, in their original order.
// A nil filter or a "no filtering" answer keeps every page.
func Select(filter Filter, group string, pages []corpus.Page) []corpus.Page {
	if filter == nil {
		return pages
	}
	ordered := make([]string, len(pages))
	for i, p := range pages {
		ordered[i] = p.ID
	}
	keep, ok := filter.Keep(group, ordered)
	if !ok {
		return pages
	}
	out := make([]corpus.Page, 0, len(keep))
	for _, p := range pages {
		if _, ok := keep[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
