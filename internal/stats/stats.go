// Package stats reads the per-level block counts written by the worldgen
// statistics mod and derives spawn probabilities from them.
package stats

import (
	"math"
	"sort"
)

// Stats holds one world's counts. Totals[i] is the number of samples taken at
// the i-th level; Blocks[id][i] counts how many of them were id.
type Stats struct {
	Totals []int64
	Blocks map[string][]int64
	IDs    []string // sorted keys of Blocks
}

// New builds Stats and its sorted id list.
func New(totals []int64, blocks map[string][]int64) *Stats {
	ids := make([]string, 0, len(blocks))
	for id := range blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &Stats{Totals: totals, Blocks: blocks, IDs: ids}
}

// Counts returns the per-level counts of block.
func (s *Stats) Counts(block string) ([]int64, bool) {
	c, ok := s.Blocks[block]
	return c, ok
}

// Samples sums Totals.
func (s *Stats) Samples() int64 {
	var n int64
	for _, t := range s.Totals {
		n += t
	}
	return n
}

// Curve divides counts by totals level by level. Levels with no samples are
// NaN. The result always has len(totals) entries; missing counts read as 0.
func Curve(counts, totals []int64) []float64 {
	out := make([]float64, len(totals))
	for i, total := range totals {
		if total == 0 {
			out[i] = math.NaN()
			continue
		}
		var c int64
		if i < len(counts) {
			c = counts[i]
		}
		out[i] = float64(c) / float64(total)
	}
	return out
}
