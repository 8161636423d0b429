package stats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"

	"rerview/internal/config"
)

// ErrMalformed marks a statistics file that could not be decoded or lacks
// the expected entries.
var ErrMalformed = errors.New("malformed statistics file")

// Loader decodes statistics files. It keeps no state between calls.
type Loader struct {
	tags   config.Tags
	levels int
	logger *slog.Logger
}

// NewLoader creates a Loader reading the given tag names. Every file must
// hold exactly levels samples per array.
func NewLoader(tags config.Tags, levels int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{tags: tags, levels: levels, logger: logger}
}

// Load reads and decodes the file at path.
func (l *Loader) Load(path string) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := l.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("statistics loaded", "path", path, "levels", len(s.Totals), "blocks", len(s.IDs))
	return s, nil
}

// Decode reads gzip-compressed or raw NBT from r.
func (l *Loader) Decode(r io.Reader) (*Stats, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		defer zr.Close()
		src = zr
	}

	var root any
	if _, err := nbt.NewDecoder(src).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return l.extract(root)
}

func (l *Loader) extract(root any) (*Stats, error) {
	top, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is not a compound", ErrMalformed)
	}
	data, ok := top[l.tags.Data].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing compound %q", ErrMalformed, l.tags.Data)
	}

	rawTotals, ok := data[l.tags.Totals]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformed, l.tags.Totals)
	}
	totals, err := int64s(rawTotals)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, l.tags.Totals, err)
	}
	if len(totals) != l.levels {
		return nil, fmt.Errorf("%w: %s has %d levels, configured range has %d",
			ErrMalformed, l.tags.Totals, len(totals), l.levels)
	}

	rawBlocks, ok := data[l.tags.Blocks].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing compound %q", ErrMalformed, l.tags.Blocks)
	}
	blocks := make(map[string][]int64, len(rawBlocks))
	for id, v := range rawBlocks {
		counts, err := int64s(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, id, err)
		}
		if len(counts) != len(totals) {
			return nil, fmt.Errorf("%w: %s has %d levels, totals have %d",
				ErrMalformed, id, len(counts), len(totals))
		}
		blocks[id] = counts
	}
	return New(totals, blocks), nil
}

// int64s widens any NBT numeric array or list of integers.
func int64s(v any) ([]int64, error) {
	switch a := v.(type) {
	case []int64:
		return a, nil
	case []int32:
		return widen(a), nil
	case []int16:
		return widen(a), nil
	case []int8:
		return widen(a), nil
	case []byte:
		out := make([]int64, len(a))
		for i, b := range a {
			out[i] = int64(int8(b))
		}
		return out, nil
	case []any:
		out := make([]int64, len(a))
		for i, e := range a {
			n, ok := integer(e)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, not an integer", i, e)
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("%T is not a numeric array", v)
}

func widen[T int8 | int16 | int32](a []T) []int64 {
	out := make([]int64, len(a))
	for i, n := range a {
		out[i] = int64(n)
	}
	return out
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case byte:
		return int64(int8(n)), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
