package currier

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
)

type folioRange struct{ start, end string }

var (
	rangesA  = []folioRange{{"f1r", "f24v"}, {"f31r", "f31v"}, {"f88r", "f90v1"}}
	singlesA = []string{"f25r", "f25v", "f32r", "f32v", "f33r", "f34r", "f34v", "f67r2", "f67v1", "f67v2", "f91v"}

	rangesB  = []folioRange{{"f26r", "f30v"}, {"f35r", "f39v"}, {"f75r", "f84v"}, {"f93r", "f96v"}, {"f100r1", "f116r"}}
	singlesB = []string{"f68r1", "f68r2", "f68v1", "f68v2"}
)

var folioRe = regexp.MustCompile(`^f(\d+)(r|v)(\d*)$`)

// RangeFilter selects pages from the static Currier A/B folio tables.
type RangeFilter struct {
	log *slog.Logger
}

// NewRangeFilter returns the static-range strategy.
func NewRangeFilter(log *slog.Logger) *RangeFilter {
	if log == nil {
		log = slog.Default()
	}
	return &RangeFilter{log: log}
}

func (f *RangeFilter) Keep(group string, ordered []string) (map[string]struct{}, bool) {
	var pages []string
	switch Group(group) {
	case "a":
		pages = f.collect(rangesA, singlesA, ordered)
	case "b":
		pages = f.collect(rangesB, singlesB, ordered)
	default:
		f.log.Debug("unknown currier group, no filtering", slog.String("group", group))
		return nil, false
	}
	if len(pages) == 0 {
		return nil, false
	}
	keep := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		keep[p] = struct{}{}
	}
	return keep, true
}

// Pages lists the folios of a group in page order when ordered is given,
// otherwise sorted.
func (f *RangeFilter) Pages(group string, ordered []string) []string {
	switch Group(group) {
	case "a":
		return f.collect(rangesA, singlesA, ordered)
	case "b":
		return f.collect(rangesB, singlesB, ordered)
	}
	return nil
}

func (f *RangeFilter) collect(ranges []folioRange, singles []string, ordered []string) []string {
	var pages []string
	for _, r := range ranges {
		pages = append(pages, f.expand(r.start, r.end, ordered)...)
	}
	pages = append(pages, singles...)

	if len(ordered) > 0 {
		keep := make(map[string]struct{}, len(pages))
		for _, p := range pages {
			keep[p] = struct{}{}
		}
		var out []string
		for _, p := range ordered {
			if _, ok := keep[p]; ok {
				out = append(out, p)
			}
		}
		return out
	}
	slices.Sort(pages)
	return slices.Compact(pages)
}

// expand lists the folios between start and end inclusive. With a known page
// order the slice between both ids is used; otherwise folios are enumerated
// recto/verso by number.
func (f *RangeFilter) expand(start, end string, ordered []string) []string {
	if len(ordered) > 0 {
		si, ei := slices.Index(ordered, start), slices.Index(ordered, end)
		if si != -1 && ei != -1 {
			if si > ei {
				si, ei = ei, si
			}
			return slices.Clone(ordered[si : ei+1])
		}
		f.log.Warn("range not found in page order, falling back",
			slog.String("start", start), slog.String("end", end))
	}

	ms, me := folioRe.FindStringSubmatch(start), folioRe.FindStringSubmatch(end)
	if ms == nil || me == nil {
		if start == end {
			return []string{start}
		}
		return []string{start, end}
	}
	sn, _ := strconv.Atoi(ms[1])
	en, _ := strconv.Atoi(me[1])
	ss, es := ms[2], me[2]
	sfx, efx := ms[3], me[3]

	if sn == en && ss == es && sfx != "" && efx != "" {
		from, _ := strconv.Atoi(sfx)
		to, _ := strconv.Atoi(efx)
		var out []string
		for i := from; i <= to; i++ {
			out = append(out, fmt.Sprintf("f%d%s%d", sn, ss, i))
		}
		return out
	}
	if sfx != "" || efx != "" {
		f.log.Warn("unexpected suffix in range", slog.String("start", start), slog.String("end", end))
	}

	side := map[string]int{"r": 0, "v": 1}
	var out []string
	for n := sn; n <= en; n++ {
		for _, s := range []string{"r", "v"} {
			if n == sn && side[s] < side[ss] {
				continue
			}
			if n == en && side[s] > side[es] {
				continue
			}
			out = append(out, fmt.Sprintf("f%d%s", n, s))
		}
	}
	return out
}
