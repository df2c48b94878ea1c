// Package rng provides the deterministic random source the collapse
// loop draws from: a single 16-byte seed that reproducibly yields a
// stream of uniform floats and weighted integer samples (§6).
//
// The mixing core is adapted from github.com/kelindar/noise's
// coordinate-keyed xxhash64, generalized from "hash one (seed,
// coordinate) pair" into "hash one (seed, draw-counter) pair" so the
// same deterministic-hash machinery can back a sequential draw stream
// instead of a spatially-keyed one.
package rng

import (
	"encoding/binary"
	"math/bits"
)

// Seed is the 16-byte seed contract required by §6 of the specification.
type Seed [16]byte

// Source is a seeded, allocation-free deterministic generator. Two
// Sources built from the same Seed and driven with the same sequence of
// calls produce byte-identical output, which is what makes a collapse
// run reproducible (§5, §8 property 7).
type Source struct {
	state   uint64
	counter uint64
}

// NewSource builds a Source from a 16-byte seed.
func NewSource(seed Seed) *Source {
	hi := binary.LittleEndian.Uint64(seed[0:8])
	lo := binary.LittleEndian.Uint64(seed[8:16])
	return &Source{state: hi ^ mix(lo)}
}

func mix(x uint64) uint64 { return x*0x9e3779b97f4a7c15 + 1 }

// xxhash64 is the teacher's unrolled xxhash64 mixing function, kept
// byte-for-byte identical to github.com/kelindar/noise's noise.go so the
// same hash quality backs this module's draw stream.
func xxhash64(v, seed uint64) uint64 {
	x := v ^ (0x1cad21f72c81017c ^ 0xdb979083e96dd4de) + seed
	x ^= bits.RotateLeft64(x, 49) ^ bits.RotateLeft64(x, 24)
	x *= 0x9fb21c651e98df25
	x ^= (x >> 35) + 4
	x *= 0x9fb21c651e98df25
	x ^= (x >> 28)
	return x
}

func (s *Source) next() uint64 {
	s.counter++
	return xxhash64(s.counter, s.state)
}

// Float32 returns the next deterministic value in [0, 1).
func (s *Source) Float32() float32 {
	h := s.next()
	return float32(h>>40) / float32(1<<24)
}

// Float64 returns the next deterministic value in [0, 1).
func (s *Source) Float64() float64 {
	h := s.next()
	return float64(h>>11) / float64(1<<53)
}

// WeightedIndex samples an index into weights proportionally to each
// entry's weight, using one Float64 draw. It panics if weights is empty
// or every entry is zero, both programmer errors at call sites in this
// module (a cell's possible set is never empty when this is called).
func (s *Source) WeightedIndex(weights []uint32) int {
	var total uint64
	for _, w := range weights {
		total += uint64(w)
	}
	if len(weights) == 0 || total == 0 {
		panic("rng: WeightedIndex requires at least one positive weight")
	}

	draw := s.Float64() * float64(total)
	var cum float64
	for i, w := range weights {
		cum += float64(w)
		if draw < cum {
			return i
		}
	}
	// Floating point rounding can leave draw == sum(weights); fall back
	// to the last entry rather than index out of range.
	return len(weights) - 1
}
