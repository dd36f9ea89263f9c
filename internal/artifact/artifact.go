// Package artifact reads and writes analysis results. The format follows the
// file extension: ".json" is indented JSON, ".msgpack.zst" is zstd-compressed
// msgpack. Writes go through a temp file and a rename so readers never see a
// partial file.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"voynich/internal/resolver"
)

var ErrUnknownFormat = errors.New("unknown artifact format")

type Format int

const (
	JSON Format = iota
	MsgpackZstd
)

const (
	extJSON    = ".json"
	extMsgpack = ".msgpack.zst"
)

// FormatOf picks the codec for path.
func FormatOf(path string) (Format, error) {
	switch {
	case strings.HasSuffix(path, extMsgpack):
		return MsgpackZstd, nil
	case strings.HasSuffix(path, extJSON):
		return JSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Base(path))
	}
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	if f == MsgpackZstd {
		return extMsgpack
	}
	return extJSON
}

// Results is the envelope stored for one analyzed group.
type Results struct {
	RunID       string                `json:"run_id" msgpack:"run_id"`
	Group       string                `json:"group" msgpack:"group"`
	CreatedAt   time.Time             `json:"created_at" msgpack:"created_at"`
	Occurrences []resolver.Occurrence `json:"occurrences" msgpack:"occurrences"`
}

// Save encodes v to path in the format chosen by its extension.
func Save(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := encode(tmp, format, v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	success = true
	return nil
}

// Load decodes path into v.
func Load(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := decode(f, format, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func encode(w io.Writer, format Format, v any) error {
	switch format {
	case MsgpackZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		if err := msgpack.NewEncoder(zw).Encode(v); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func decode(r io.Reader, format Format, v any) error {
	switch format {
	case MsgpackZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return err
		}
		defer zr.Close()
		return msgpack.NewDecoder(zr).Decode(v)
	default:
		return json.NewDecoder(r).Decode(v)
	}
}

// SaveResults writes one group's occurrences under dir as
// ambiguous_<group><ext> and returns the path.
func SaveResults(dir string, format Format, res Results) (string, error) {
	name := "ambiguous"
	if res.Group != "" {
		name += "_" + res.Group
	}
	path := filepath.Join(dir, name+format.Ext())
	if err := Save(path, res); err != nil {
		return "", err
	}
	return path, nil
}

// SaveMapping writes a substitution mapping as mapping_<group>.json. The
// mapping is always JSON so its key order survives.
func SaveMapping(dir, group string, m *resolver.Mapping) (string, error) {
	name := "mapping"
	if group != "" {
		name += "_" + group
	}
	path := filepath.Join(dir, name+extJSON)
	if err := Save(path, m); err != nil {
		return "", err
	}
	return path, nil
}
