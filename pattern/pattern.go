// Package pattern implements pattern extraction (§4.3) and the
// PatternTable that results from it: the deduplicated set of patterns
// seen in an example grid, their weights, and a representative location
// for each, suitable for rendering back to cells by external glue.
//
// Grounded on original_source/src/pattern.rs's
// process_patterns_in_lattice and PatternGroup.
package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/wfc/compat"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/offsets"
)

// MaxID is the largest legal PatternId (§3): PatternIds must fit a
// signed 16-bit integer because support counters are stored as int16.
const MaxID = 32767

// emptyID marks a not-yet-assigned cell in the intermediate pattern-id
// lattice built during extraction.
const emptyID = ^uint16(0)

// Table holds per-pattern metadata: its weight (the number of times the
// pattern occurred in the source, times the number of offsets; see
// Extract) and the sub-grid extent that produced it.
type Table struct {
	NumPatterns     int
	Weights         []uint32
	Representatives []grid.Extent
}

// Weight returns the weight of pattern p.
func (t *Table) Weight(p uint16) uint32 { return t.Weights[p] }

// Errors returned by Extract. Contradiction and cancellation are not
// modeled here — those belong to the collapse loop (wave package); these
// are the configuration-error half of §7's taxonomy.
var (
	ErrInvalidPatternSize = errors.New("pattern: pattern size must be positive on every axis")
	ErrEmptyInput         = errors.New("pattern: input extent must be non-empty")
	ErrTooManyPatterns    = fmt.Errorf("pattern: more than %d distinct patterns found", MaxID)
)

// Extract scans input (toroidally, per §4.1) for every sub-grid of size
// patternSize, deduplicates them up to translation, and derives the
// compatibility relation over the given offset group. It is the sole
// entry point for building a PatternTable and Relation together, mirroring
// process_patterns_in_lattice's combined return of (PatternGroup,
// PatternRepresentatives).
func Extract[T comparable](input grid.CellSource[T], patternSize grid.Point, group *offsets.Group) (*Table, *compat.Relation, error) {
	if patternSize.X <= 0 || patternSize.Y <= 0 || patternSize.Z <= 0 {
		return nil, nil, ErrInvalidPatternSize
	}

	full := input.Extent()
	if full.Volume() == 0 {
		return nil, nil, ErrEmptyInput
	}

	// First pass: assign a dense id to every distinct sub-grid, tracking
	// one representative extent per id.
	ids := make(map[string]uint16)
	var representatives []grid.Extent
	patternAt := grid.Fill[uint16](full, emptyID)

	full.Range(func(p grid.Point) {
		sub := grid.NewExtent(p, patternSize)
		key := serialize(input, full, sub)
		id, ok := ids[key]
		if !ok {
			id = uint16(len(ids))
			ids[key] = id
			representatives = append(representatives, sub)
		}
		patternAt.Set(p, id)
	})

	if len(ids) > MaxID {
		return nil, nil, ErrTooManyPatterns
	}
	numPatterns := len(ids)

	// Second pass: count weights and populate the compatibility relation.
	// Both the forward and symmetric-reverse pair are recorded for every
	// visited (pattern_point, offset), matching add_compatible_patterns in
	// the Rust reference — weight is incremented once per offset visited,
	// not once per raw occurrence (see SPEC_FULL.md §6 for why this is
	// intentional).
	weights := make([]uint32, numPatterns)
	rel := compat.New(numPatterns, group.Len())
	full.Range(func(p grid.Point) {
		pid := patternAt.At(p)
		for _, oid := range group.IDs() {
			o := group.At(oid)
			qp := full.Wrap(p.Add(o))
			qid := patternAt.At(qp)

			rel.Add(pid, oid, qid)
			rel.Add(qid, group.Opposite(oid), pid)
			weights[pid]++
		}
	})
	rel.AssertValid()

	return &Table{NumPatterns: numPatterns, Weights: weights, Representatives: representatives}, rel, nil
}

// serialize turns the cell contents of sub (read toroidally against
// full) into a stable, fixed-order key. The core treats cell contents as
// opaque comparable values — file-format bit layouts are an external
// glue concern (§1) — so the key is a textual join rather than a packed
// byte encoding: each cell's %v text followed by "|", in canonical
// order. Cells are told apart only as far as that text tells them apart:
// values that print the same under %v, or string values containing "|",
// can produce the same key.
func serialize[T comparable](input grid.CellSource[T], full, sub grid.Extent) string {
	var sb strings.Builder
	sub.Range(func(p grid.Point) {
		wp := full.Wrap(p)
		fmt.Fprintf(&sb, "%v|", input.At(wp))
	})
	return sb.String()
}
