package corpus

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

var (
	pageRe = regexp.MustCompile(`^<([^>]+)>\s+(<!.*>)`)
	lineRe = regexp.MustCompile(`^<([^>]+)>\s+(.*)$`)
	metaRe = regexp.MustCompile(`\$([A-Za-z])=([^\s>]+)`)
)

var (
	paragraphStart = map[string]bool{"@P0": true, "*P0": true}
	paragraphStop  = map[string]bool{"=Pt": true}
)

const maxLineBytes = 1 << 20

// ParseMeta extracts the $K=V pairs of a page header. Keys are upper-cased.
func ParseMeta(info string) map[string]string {
	meta := make(map[string]string)
	for _, m := range metaRe.FindAllStringSubmatch(info, -1) {
		meta[strings.ToUpper(m[1])] = m[2]
	}
	return meta
}

// Parse reads an IVTFF transcription. A paragraph opens on an @P0/*P0 line
// and closes on =Pt or on a line whose text holds the "<$>" end marker.
// Words are split on "." and keep their annotation markers.
func Parse(r io.Reader, log *slog.Logger) (*Corpus, error) {
	if log == nil {
		log = slog.Default()
	}
	var (
		pages     []Page
		page      *Page
		paragraph Paragraph
	)
	closeParagraph := func() {
		if len(paragraph) > 0 && page != nil {
			page.Paragraphs = append(page.Paragraphs, paragraph)
		}
		paragraph = nil
	}
	closePage := func() {
		closeParagraph()
		if page != nil {
			pages = append(pages, *page)
		}
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := pageRe.FindStringSubmatch(line); m != nil {
			closePage()
			info := strings.TrimSpace(m[2])
			meta := ParseMeta(info)
			page = &Page{ID: m[1], Info: info, Meta: meta, Currier: meta["L"]}
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			log.Warn("unparsed line", slog.Int("line", lineNo), slog.String("text", line))
			continue
		}
		if page == nil {
			log.Warn("line before first page header", slog.Int("line", lineNo))
			continue
		}
		label, text := m[1], strings.TrimSpace(m[2])
		id, marker, _ := strings.Cut(label, ",")
		marker = strings.TrimSpace(marker)

		if paragraphStart[marker] {
			closeParagraph()
		}
		var words []string
		for _, w := range strings.Split(text, ".") {
			if w != "" {
				words = append(words, w)
			}
		}
		paragraph = append(paragraph, Line{ID: id, Marker: marker, Text: text, Words: words})
		if paragraphStop[marker] || strings.Contains(text, "<$>") {
			closeParagraph()
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan transcription at line %d: %w", lineNo, err)
	}
	closePage()
	return New(pages), nil
}
