package wave

import (
	"testing"

	"github.com/example/wfc/compat"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/offsets"
	"github.com/example/wfc/pattern"
	"github.com/example/wfc/rng"
	"github.com/stretchr/testify/require"
)

// buildConvergentContradiction builds a 3-pattern relation over Edge2D
// whose rows are all individually non-empty and mutually symmetric, but
// whose two independent axes (horizontal and vertical) converge on a
// single cell with disjoint requirements: forcing the cell above to
// pattern 0 admits only pattern 2 below it, while forcing the cell to the
// left to pattern 1 admits only patterns 0 and 1 to its right. A cell with both
// of those neighbors already collapsed has no pattern left that satisfies
// both, which is the shape of contradiction described in §4.5 (a single
// offset's constraint can never exhaust a legal relation by itself; two
// independent axes converging on one cell can).
func buildConvergentContradiction() *compat.Relation {
	rel := compat.New(3, 4)
	// offsets.Edge2D() order: id0=-X, id1=-Y, id2=+Y, id3=+X.
	add := func(p uint16, o int, qs ...uint16) {
		for _, q := range qs {
			rel.Add(p, o, q)
		}
	}

	// Vertical (id1=-Y / id2=+Y).
	add(0, 2, 2)
	add(1, 2, 0)
	add(2, 2, 1)
	add(0, 1, 1)
	add(1, 1, 2)
	add(2, 1, 0)

	// Horizontal (id0=-X / id3=+X).
	add(0, 3, 2)
	add(1, 3, 0, 1)
	add(2, 3, 2)
	add(0, 0, 1)
	add(1, 0, 1)
	add(2, 0, 0, 2)

	rel.AssertValid()
	return rel
}

func buildTestWave(t *testing.T, rel *compat.Relation) *Wave {
	t.Helper()
	table := &pattern.Table{NumPatterns: 3, Weights: []uint32{1, 1, 1}}
	group := offsets.Edge2D()
	extent := grid.NewExtent(grid.Point{}, grid.Point{X: 2, Y: 2, Z: 1})
	w, err := New(table, rel, group, extent, rng.Seed{1}, Config{})
	require.NoError(t, err)
	return w
}

// TestPropagateDetectsConvergentContradiction exercises §8 property 5
// (support never undercounts: a cell only empties when no possible
// pattern remains) and property 6 in its negative form: propagate must
// report failure, not panic, when two already-collapsed neighbors leave
// a cell with no legal pattern.
func TestPropagateDetectsConvergentContradiction(t *testing.T) {
	rel := buildConvergentContradiction()
	w := buildTestWave(t, rel)

	// Cell layout for a 2x2, X=2 extent: idx = ly*2+lx.
	// TL=0 TR=1
	// BL=2 BR=3
	const tr, bl = 1, 2

	// Force TR down to pattern 0 and BL down to pattern 1, batching the
	// removals before propagating once, exactly as observe does.
	require.False(t, w.removePattern(tr, 1))
	require.False(t, w.removePattern(tr, 2))
	require.False(t, w.removePattern(bl, 0))
	require.False(t, w.removePattern(bl, 2))

	ok := w.propagate()
	require.False(t, ok, "BR's two neighbors require disjoint patterns: propagation must fail")
}

func TestRemovePatternPanicsOnAbsentPattern(t *testing.T) {
	rel := buildConvergentContradiction()
	w := buildTestWave(t, rel)
	require.True(t, w.possible[0].Contains(0))
	w.removePattern(0, 0)
	require.Panics(t, func() { w.removePattern(0, 0) })
}
