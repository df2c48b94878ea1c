// Package compat implements the compatibility relation C (§3, §4.4): for
// every (pattern, offset) pair, the set of patterns that may legally sit
// at that offset. It is built once during pattern extraction and is
// read-only for the remainder of a run.
//
// Grounded on original_source/src/pattern.rs's
// SymmetricPatternConstraints, translated from its hibitset-backed
// BitSet rows to this module's bitfield.PatternSet.
package compat

import (
	"fmt"

	"github.com/example/wfc/bitfield"
)

// Relation is the compatibility relation C. Symmetry is kept by the
// callers: each pair is recorded in both C[p][o] and C[q][opposite(o)]
// with two Add calls, mirroring add_compatible_patterns in the reference.
type Relation struct {
	numPatterns int
	numOffsets  int
	rows        [][]bitfield.PatternSet
}

// New allocates a Relation with every row empty and preallocated to
// numPatterns bits.
func New(numPatterns, numOffsets int) *Relation {
	rows := make([][]bitfield.PatternSet, numPatterns)
	for p := range rows {
		row := make([]bitfield.PatternSet, numOffsets)
		for o := range row {
			row[o] = bitfield.Empty(numPatterns)
		}
		rows[p] = row
	}
	return &Relation{numPatterns: numPatterns, numOffsets: numOffsets, rows: rows}
}

// NumPatterns returns the number of patterns the relation covers.
func (r *Relation) NumPatterns() int { return r.numPatterns }

// NumOffsets returns the number of offsets the relation covers.
func (r *Relation) NumOffsets() int { return r.numOffsets }

// Add records that q is compatible with p at offset. Callers are
// expected to call Add a second time with the symmetric pair
// (q, opposite(offset), p) so that C[p][o] ⇔ C[q][opposite(o)] holds;
// Relation itself does not know the offset group's opposite mapping.
func (r *Relation) Add(p uint16, offset int, q uint16) {
	r.rows[p][offset].Add(q)
}

// Compatible reports whether q may sit at offset relative to p.
func (r *Relation) Compatible(p uint16, offset int, q uint16) bool {
	return r.rows[p][offset].Contains(q)
}

// NumCompatible returns the number of patterns compatible with p at
// offset.
func (r *Relation) NumCompatible(p uint16, offset int) int {
	return r.rows[p][offset].Len()
}

// Iterate visits every pattern compatible with p at offset, in
// ascending order.
func (r *Relation) Iterate(p uint16, offset int, fn func(q uint16)) {
	r.rows[p][offset].Range(fn)
}

// AssertValid panics if any (pattern, offset) row is empty, which would
// violate the non-empty-rows invariant (§3) extraction is supposed to
// guarantee for any non-empty, toroidally-wrapped input. A violation
// here is a bug in the extraction pass, not a recoverable input error.
func (r *Relation) AssertValid() {
	for p := 0; p < r.numPatterns; p++ {
		for o := 0; o < r.numOffsets; o++ {
			if r.rows[p][o].IsEmpty() {
				panic(fmt.Sprintf("compat: empty compatibility row for pattern %d at offset %d", p, o))
			}
		}
	}
}

// InitialSupport seeds one cell's worth of per-(pattern, offset) support
// counters (§4.4): support[p][o] = num_compatible(p, opposite(o)). The
// caller supplies opposite since Relation does not own an offset group.
// The result is laid out flat as support[p*numOffsets+o] so Wave can
// clone it cheaply per cell.
func (r *Relation) InitialSupport(opposite func(offset int) int) []int16 {
	out := make([]int16, r.numPatterns*r.numOffsets)
	for p := 0; p < r.numPatterns; p++ {
		for o := 0; o < r.numOffsets; o++ {
			out[p*r.numOffsets+o] = int16(r.NumCompatible(uint16(p), opposite(o)))
		}
	}
	return out
}
