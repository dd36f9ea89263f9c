package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"

	"voynich/internal/normalize"
)

const (
	DefaultMappingProb = 0.5
	DefaultMappingGap  = 1.5

	DefaultSubstituteProb = 0.2
	DefaultSubstituteGap  = 1.5
)

// Mapping is an encounter-ordered table from an ambiguous clean form to the
// candidate chosen for it.
type Mapping struct {
	om *orderedmap.OrderedMap
}

func NewMapping() *Mapping {
	return &Mapping{om: orderedmap.New()}
}

// Set stores c for form. An existing form keeps its position.
func (m *Mapping) Set(form string, c Candidate) { m.om.Set(form, c) }

func (m *Mapping) Get(form string) (Candidate, bool) {
	v, ok := m.om.Get(form)
	if !ok {
		return Candidate{}, false
	}
	c, ok := v.(Candidate)
	return c, ok
}

func (m *Mapping) Delete(form string) { m.om.Delete(form) }

func (m *Mapping) Keys() []string { return m.om.Keys() }

func (m *Mapping) Len() int { return len(m.om.Keys()) }

func (m *Mapping) MarshalJSON() ([]byte, error) {
	return m.om.MarshalJSON()
}

func (m *Mapping) UnmarshalJSON(b []byte) error {
	keys := orderedmap.New()
	if err := keys.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode mapping: %w", err)
	}
	var values map[string]Candidate
	if err := json.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("decode mapping: %w", err)
	}
	m.om = orderedmap.New()
	for _, k := range keys.Keys() {
		m.om.Set(k, values[k])
	}
	return nil
}

// Accepts reports whether c clears both confidence thresholds.
func Accepts(c Candidate, probThresh, gapThresh float64) bool {
	return c.ConfAbs >= probThresh && float64(c.ConfGap) >= gapThresh
}

// BuildMapping keeps, for every ambiguous form, the top candidate of its
// occurrences when it clears both thresholds. A later occurrence of the
// same form replaces the earlier entry.
func BuildMapping(results []Occurrence, probThresh, gapThresh float64) *Mapping {
	m := NewMapping()
	for _, occ := range results {
		best, ok := occ.Best()
		if !ok {
			continue
		}
		if Accepts(best, probThresh, gapThresh) {
			m.Set(occ.Clean, best)
		}
	}
	return m
}

// Lookup resolves a clean word to a candidate. Implementations may consult
// a stored mapping or score on the fly.
type Lookup interface {
	Get(form string) (Candidate, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(form string) (Candidate, bool)

func (f LookupFunc) Get(form string) (Candidate, bool) { return f(form) }

// Substituter cleans word lists and swaps in resolved forms.
type Substituter struct {
	lookup     Lookup
	probThresh float64
	gapThresh  float64
}

// NewSubstituter returns a Substituter using the given thresholds. A nil
// lookup only cleans.
func NewSubstituter(lookup Lookup, probThresh, gapThresh float64) *Substituter {
	return &Substituter{lookup: lookup, probThresh: probThresh, gapThresh: gapThresh}
}

// Words normalizes each word, drops empties and replaces words whose
// resolution clears the thresholds.
func (s *Substituter) Words(words []string) []string {
	out := make([]string, 0, len(words))
	for _, raw := range words {
		w := normalize.Word(raw)
		if w == "" {
			continue
		}
		if s.lookup != nil {
			if c, ok := s.lookup.Get(w); ok && Accepts(c, s.probThresh, s.gapThresh) {
				w = c.Form
			}
		}
		out = append(out, w)
	}
	return out
}
