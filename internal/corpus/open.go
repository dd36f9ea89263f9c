package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Open loads a corpus from disk. Files ending in .json hold a serialized
// Corpus; anything else is parsed as an IVTFF transcription. The file is
// mapped read-only for the duration of the parse.
func Open(path string, log *slog.Logger) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat corpus: %w", err)
	}
	if fi.Size() == 0 {
		return New(nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap corpus: %w", err)
	}
	defer m.Unmap()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var c Corpus
		if err := json.Unmarshal(m, &c); err != nil {
			return nil, fmt.Errorf("decode corpus %s: %w", filepath.Base(path), err)
		}
		c.reindex()
		return &c, nil
	}
	return Parse(bytes.NewReader(m), log)
}
