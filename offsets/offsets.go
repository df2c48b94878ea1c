// Package offsets models the closed set of neighborhood displacement
// vectors a pattern group is defined over: the 4 edge offsets for 2D
// work or the 6 face offsets for 3D work (§3, §4.2).
//
// Offsets are assigned dense, stable IDs. The list backing a Group MUST
// be ordered so that the offset at index k and the offset at index
// N-1-k are negatives of one another — that invariant is what makes
// Opposite a pure arithmetic involution instead of a lookup.
package offsets

import "github.com/example/wfc/grid"

// Group is a closed, ordered set of offsets with an opposite involution.
type Group struct {
	list  []grid.Point
	index map[grid.Point]int
}

// New builds a Group from an explicit, pre-ordered offset list. The
// caller is responsible for the negation-pairing invariant; Face3D and
// Edge2D below are the two canonical, pre-validated constructors.
func New(list []grid.Point) *Group {
	idx := make(map[grid.Point]int, len(list))
	cp := make([]grid.Point, len(list))
	copy(cp, list)
	for i, o := range cp {
		idx[o] = i
	}
	return &Group{list: cp, index: idx}
}

// Len returns the number of offsets in the group.
func (g *Group) Len() int { return len(g.list) }

// At returns the offset vector for a dense offset id.
func (g *Group) At(id int) grid.Point { return g.list[id] }

// IndexOf returns the dense id for an offset vector, if present.
func (g *Group) IndexOf(p grid.Point) (int, bool) {
	id, ok := g.index[p]
	return id, ok
}

// Opposite returns the id of the negated offset. It is a pure arithmetic
// involution given the group's ordering invariant: Opposite(Opposite(o))
// == o always holds.
func (g *Group) Opposite(id int) int { return g.Len() - 1 - id }

// IDs returns every offset id in ascending order.
func (g *Group) IDs() []int {
	ids := make([]int, g.Len())
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// face3DOffsets are the 6 axis-aligned face neighbors, ordered so that
// entry k and entry 5-k negate each other.
var face3DOffsets = []grid.Point{
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: -1},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 0},
}

// edge2DOffsets are the 4 edge neighbors in the Z=0 plane, ordered so
// that entry k and entry 3-k negate each other.
var edge2DOffsets = []grid.Point{
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 0},
}

// Face3D returns the canonical 6-face 3D offset group.
func Face3D() *Group { return New(face3DOffsets) }

// Edge2D returns the canonical 4-edge 2D offset group.
func Edge2D() *Group { return New(edge2DOffsets) }
