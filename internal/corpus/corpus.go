// Package corpus holds the parsed page/paragraph/line structure of the
// transcription and the page index built on top of it.
package corpus

import (
	"errors"
	"fmt"
	"strings"

	"voynich/internal/normalize"
)

// ErrPageOutOfRange is returned when a 1-based page number does not exist.
var ErrPageOutOfRange = errors.New("page number out of range")

// Line is one transcription line with its raw dot-separated words.
type Line struct {
	ID     string   `json:"id" msgpack:"id"`
	Marker string   `json:"marker" msgpack:"marker"`
	Text   string   `json:"text" msgpack:"text"`
	Words  []string `json:"words" msgpack:"words"`
}

// Paragraph is an ordered run of lines. Word adjacency never crosses a
// paragraph boundary.
type Paragraph []Line

// Words flattens the paragraph's raw words in reading order.
func (p Paragraph) Words() []string {
	var out []string
	for _, l := range p {
		out = append(out, l.Words...)
	}
	return out
}

// Page is a single folio side.
type Page struct {
	ID         string            `json:"id" msgpack:"id"`
	Info       string            `json:"info" msgpack:"info"`
	Meta       map[string]string `json:"meta,omitempty" msgpack:"meta,omitempty"`
	Currier    string            `json:"currier,omitempty" msgpack:"currier,omitempty"`
	Paragraphs []Paragraph       `json:"paragraphs" msgpack:"paragraphs"`
}

// Corpus is the ordered set of pages.
type Corpus struct {
	Pages []Page `json:"pages" msgpack:"pages"`
	byID  map[string]int
}

// New builds a Corpus and its id index.
func New(pages []Page) *Corpus {
	c := &Corpus{Pages: pages}
	c.reindex()
	return c
}

func (c *Corpus) reindex() {
	c.byID = make(map[string]int, len(c.Pages))
	for i, p := range c.Pages {
		c.byID[p.ID] = i
	}
}

// Order returns page ids in transcription order.
func (c *Corpus) Order() []string {
	out := make([]string, len(c.Pages))
	for i, p := range c.Pages {
		out[i] = p.ID
	}
	return out
}

// PageNumbers maps page id to its 1-based position.
func (c *Corpus) PageNumbers() map[string]int {
	out := make(map[string]int, len(c.Pages))
	for i, p := range c.Pages {
		out[p.ID] = i + 1
	}
	return out
}

// CurrierIndex maps page id to the Currier label from its header. Pages
// without a label are omitted.
func (c *Corpus) CurrierIndex() map[string]string {
	out := make(map[string]string)
	for _, p := range c.Pages {
		if p.Currier != "" {
			out[p.ID] = p.Currier
		}
	}
	return out
}

// Page looks a page up by id.
func (c *Corpus) Page(id string) (*Page, bool) {
	if c.byID == nil {
		c.reindex()
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.Pages[i], true
}

// ResolvePage maps a 1-based page number to its id.
func (c *Corpus) ResolvePage(n int) (string, error) {
	if n <= 0 || n > len(c.Pages) {
		return "", fmt.Errorf("%w: %d not in 1..%d", ErrPageOutOfRange, n, len(c.Pages))
	}
	return c.Pages[n-1].ID, nil
}

// ParagraphWords returns one word list per paragraph of the page. When
// cleaned is set the words are normalized and empty ones dropped.
func (c *Corpus) ParagraphWords(id string, cleaned bool) ([][]string, error) {
	p, ok := c.Page(id)
	if !ok {
		return nil, fmt.Errorf("unknown page %q", id)
	}
	blocks := make([][]string, 0, len(p.Paragraphs))
	for _, para := range p.Paragraphs {
		words := para.Words()
		if cleaned {
			words = normalize.Words(words)
		}
		blocks = append(blocks, words)
	}
	return blocks, nil
}

// PlainText renders a page as one space-joined line per paragraph.
func (c *Corpus) PlainText(id string, cleaned bool) (string, error) {
	blocks, err := c.ParagraphWords(id, cleaned)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = strings.Join(b, " ")
	}
	return strings.Join(lines, "\n"), nil
}
