package wave_test

import (
	"context"
	"testing"

	"github.com/example/wfc/compat"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/offsets"
	"github.com/example/wfc/pattern"
	"github.com/example/wfc/rng"
	"github.com/example/wfc/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfCompatible(numPatterns, numOffsets int) *compat.Relation {
	rel := compat.New(numPatterns, numOffsets)
	for p := 0; p < numPatterns; p++ {
		for o := 0; o < numOffsets; o++ {
			rel.Add(uint16(p), o, uint16(p))
		}
	}
	return rel
}

// TestRunUniformPatternSucceedsImmediately is S2 from §8: a single-pattern
// table leaves every cell already collapsed at construction time, so Run
// must report Success without any observe/propagate work.
func TestRunUniformPatternSucceedsImmediately(t *testing.T) {
	table := &pattern.Table{NumPatterns: 1, Weights: []uint32{5}}
	group := offsets.Edge2D()
	rel := selfCompatible(1, group.Len())
	extent := grid.NewExtent(grid.Point{}, grid.Point{X: 3, Y: 3, Z: 1})

	w, err := wave.New(table, rel, group, extent, rng.Seed{7}, wave.Config{})
	require.NoError(t, err)

	state := w.Run(context.Background())
	assert.Equal(t, wave.Success, state)
	assert.Equal(t, 0, w.Steps())
	assert.Equal(t, extent.Volume(), w.CollapsedCount())

	result := w.Result()
	for i := 0; i < extent.Volume(); i++ {
		assert.Equal(t, uint16(0), result.AtIndex(i))
	}
}

// checkerboardRelation builds a 2-pattern relation where every offset
// forces alternation, so any output extent has a unique solution up to
// the choice of which pattern starts the sequence.
func checkerboardRelation(numOffsets int) *compat.Relation {
	rel := compat.New(2, numOffsets)
	for o := 0; o < numOffsets; o++ {
		rel.Add(0, o, 1)
		rel.Add(1, o, 0)
	}
	return rel
}

// TestRunIsDeterministicForAFixedSeed is S6 from §8: two independent
// Waves built from the same table, relation, extent, and seed must
// collapse to byte-identical results.
func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	table := &pattern.Table{NumPatterns: 2, Weights: []uint32{3, 5}}
	group := offsets.Edge2D()
	extent := grid.NewExtent(grid.Point{}, grid.Point{X: 4, Y: 4, Z: 1})
	seed := rng.Seed{0x42, 0x13}

	run := func() *grid.Grid[uint16] {
		rel := checkerboardRelation(group.Len())
		w, err := wave.New(table, rel, group, extent, seed, wave.Config{})
		require.NoError(t, err)
		state := w.Run(context.Background())
		require.Equal(t, wave.Success, state)
		return w.Result()
	}

	a := run()
	b := run()
	for i := 0; i < extent.Volume(); i++ {
		assert.Equal(t, a.AtIndex(i), b.AtIndex(i), "cell %d diverged between identically seeded runs", i)
	}
}

func TestRunFailsOnCanceledContext(t *testing.T) {
	table := &pattern.Table{NumPatterns: 1, Weights: []uint32{1}}
	group := offsets.Edge2D()
	rel := selfCompatible(1, group.Len())
	extent := grid.NewExtent(grid.Point{}, grid.Point{X: 2, Y: 2, Z: 1})

	w, err := wave.New(table, rel, group, extent, rng.Seed{1}, wave.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, wave.Failure, w.Run(ctx))
}

func TestResultPanicsBeforeSuccess(t *testing.T) {
	table := &pattern.Table{NumPatterns: 1, Weights: []uint32{1}}
	group := offsets.Edge2D()
	rel := selfCompatible(1, group.Len())
	extent := grid.NewExtent(grid.Point{}, grid.Point{X: 2, Y: 2, Z: 1})

	w, err := wave.New(table, rel, group, extent, rng.Seed{1}, wave.Config{})
	require.NoError(t, err)

	assert.Panics(t, func() { w.Result() })
}
