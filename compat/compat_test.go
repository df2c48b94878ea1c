package compat_test

import (
	"testing"

	"github.com/example/wfc/compat"
	"github.com/stretchr/testify/assert"
)

// buildSymmetric inserts both directions of a compatible pair, the way
// pattern.Extract does, using a trivial 2-offset opposite mapping
// (0 <-> 1).
func buildSymmetric(r *compat.Relation, p uint16, offset int, q uint16) {
	r.Add(p, offset, q)
	r.Add(q, 1-offset, p)
}

func TestSymmetryInvariant(t *testing.T) {
	r := compat.New(3, 2)
	buildSymmetric(r, 0, 0, 1)
	buildSymmetric(r, 1, 0, 2)

	assert.True(t, r.Compatible(0, 0, 1))
	assert.True(t, r.Compatible(1, 1, 0))
	assert.True(t, r.Compatible(1, 0, 2))
	assert.True(t, r.Compatible(2, 1, 1))
	assert.False(t, r.Compatible(0, 0, 2))
}

func TestNumCompatibleAndIterate(t *testing.T) {
	r := compat.New(3, 1)
	r.Add(0, 0, 0)
	r.Add(0, 0, 1)
	r.Add(0, 0, 2)

	assert.Equal(t, 3, r.NumCompatible(0, 0))
	var got []uint16
	r.Iterate(0, 0, func(q uint16) { got = append(got, q) })
	assert.Equal(t, []uint16{0, 1, 2}, got)
}

func TestAssertValidPanicsOnEmptyRow(t *testing.T) {
	r := compat.New(2, 1)
	r.Add(0, 0, 0) // pattern 1's row at offset 0 is left empty
	assert.Panics(t, func() { r.AssertValid() })
}

func TestInitialSupport(t *testing.T) {
	r := compat.New(2, 2)
	// offset 0 and 1 are mutual opposites
	buildSymmetric(r, 0, 0, 0)
	buildSymmetric(r, 0, 0, 1)

	opposite := func(o int) int { return 1 - o }
	support := r.InitialSupport(opposite)

	// support[p*numOffsets+o] == NumCompatible(p, opposite(o))
	assert.Equal(t, int16(r.NumCompatible(0, 1)), support[0*2+0])
	assert.Equal(t, int16(r.NumCompatible(0, 0)), support[0*2+1])
}
