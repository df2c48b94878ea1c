// Package bitfield implements PatternSet (§3, §9): a constant-time set
// of PatternIds backed by github.com/kelindar/bitmap, the teacher's own
// dependency for compact spatial occupancy bitsets (used there as the
// per-cell grid in sparse.go's hard-core point sampling). Here it tracks
// which patterns remain possible, rather than which grid cells are
// occupied, but the underlying contract — a growable bitset with O(1)
// membership, set and clear — is identical.
package bitfield

import "github.com/kelindar/bitmap"

// PatternSet is a bitset over [0, numPatterns). Size is tracked
// separately from the bitset so Len is O(1) rather than a population
// count on every hot-path call (§9).
type PatternSet struct {
	bits bitmap.Bitmap
	size int
}

// Full returns a PatternSet containing every pattern in [0, numPatterns).
func Full(numPatterns int) PatternSet {
	var b bitmap.Bitmap
	if numPatterns == 0 {
		return PatternSet{}
	}
	b.Grow(uint32(numPatterns - 1))
	for i := 0; i < numPatterns; i++ {
		b.Set(uint32(i))
	}
	return PatternSet{bits: b, size: numPatterns}
}

// Empty returns a PatternSet over [0, numPatterns) with no members set,
// preallocated so subsequent Add calls never reallocate.
func Empty(numPatterns int) PatternSet {
	var b bitmap.Bitmap
	if numPatterns > 0 {
		b.Grow(uint32(numPatterns - 1))
	}
	return PatternSet{bits: b}
}

// Contains reports whether p is a member of the set.
func (s *PatternSet) Contains(p uint16) bool {
	return s.bits.Contains(uint32(p))
}

// Add inserts p into the set.
func (s *PatternSet) Add(p uint16) {
	if !s.bits.Contains(uint32(p)) {
		s.bits.Set(uint32(p))
		s.size++
	}
}

// Remove deletes p from the set. Removing an absent pattern is a no-op
// at this layer; callers that must treat it as a programmer error (the
// Wave's remove_pattern, per §4.5) check Contains first.
func (s *PatternSet) Remove(p uint16) {
	if s.bits.Contains(uint32(p)) {
		s.bits.Remove(uint32(p))
		s.size--
	}
}

// Len returns the number of members in the set.
func (s *PatternSet) Len() int { return s.size }

// IsEmpty reports whether the set has no members.
func (s *PatternSet) IsEmpty() bool { return s.size == 0 }

// Range visits every member in ascending order.
func (s PatternSet) Range(fn func(p uint16)) {
	s.bits.Range(func(x uint32) { fn(uint16(x)) })
}

// First returns the sole member of a singleton set. It panics if the
// set does not contain exactly one member, matching §4.6's requirement
// that result extraction only ever reads a collapsed cell.
func (s PatternSet) First() uint16 {
	if s.size != 1 {
		panic("bitfield: First called on a set that is not a singleton")
	}
	var found uint16
	s.bits.Range(func(x uint32) { found = uint16(x) })
	return found
}

// Clone returns an independent copy of the set.
func (s PatternSet) Clone() PatternSet {
	return PatternSet{bits: s.bits.Clone(nil), size: s.size}
}
