package resolver

import (
	"encoding/json"
	"fmt"
	"math"
)

// Gap is the ratio between the top two candidates' unnormalized
// likelihoods. A sole candidate has an infinite gap, which JSON encodes as
// the string "Infinity".
type Gap float64

func (g Gap) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(g), 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(g))
}

func (g *Gap) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "Infinity" {
			return fmt.Errorf("invalid conf_gap %q", s)
		}
		*g = Gap(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("invalid conf_gap: %w", err)
	}
	*g = Gap(f)
	return nil
}

type Candidate struct {
	Form         string  `json:"form" msgpack:"form"`
	Score        float64 `json:"score" msgpack:"score"`
	Freq         int     `json:"freq" msgpack:"freq"`
	WordPrior    float64 `json:"word_prior" msgpack:"word_prior"`
	CharScore    float64 `json:"char_score" msgpack:"char_score"`
	ContextScore float64 `json:"context_score" msgpack:"context_score"`
	ConfAbs      float64 `json:"conf_abs" msgpack:"conf_abs"`
	ConfGap      Gap     `json:"conf_gap" msgpack:"conf_gap"`
}

// Occurrence is one ambiguous token in reading position with its context.
type Occurrence struct {
	PageID       string      `json:"page_id" msgpack:"page_id"`
	ParagraphIdx int         `json:"paragraph_idx" msgpack:"paragraph_idx"`
	LineIdx      int         `json:"line_idx" msgpack:"line_idx"`
	LineID       string      `json:"line_id" msgpack:"line_id"`
	TokenIdx     int         `json:"token_idx" msgpack:"token_idx"`
	Raw          string      `json:"raw" msgpack:"raw"`
	Clean        string      `json:"clean" msgpack:"clean"`
	Currier      string      `json:"currier" msgpack:"currier"`
	Prev         *string     `json:"prev" msgpack:"prev"`
	Next         *string     `json:"next" msgpack:"next"`
	Candidates   []Candidate `json:"candidates" msgpack:"candidates"`
}

// Best returns the top-ranked candidate, if any.
func (o Occurrence) Best() (Candidate, bool) {
	if len(o.Candidates) == 0 {
		return Candidate{}, false
	}
	return o.Candidates[0], true
}
