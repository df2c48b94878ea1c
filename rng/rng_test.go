package rng_test

import (
	"testing"

	"github.com/example/wfc/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	seed := rng.Seed{1, 2, 3}
	a := rng.NewSource(seed)
	b := rng.NewSource(seed)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestFloat64Range(t *testing.T) {
	s := rng.NewSource(rng.Seed{9})
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := rng.NewSource(rng.Seed{1})
	b := rng.NewSource(rng.Seed{2})
	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestWeightedIndexDistribution(t *testing.T) {
	s := rng.NewSource(rng.Seed{42})
	counts := make([]int, 3)
	weights := []uint32{1, 0, 3}
	for i := 0; i < 4000; i++ {
		counts[s.WeightedIndex(weights)]++
	}
	assert.Zero(t, counts[1], "zero-weight entry must never be chosen")
	assert.Greater(t, counts[2], counts[0], "heavier weight should be chosen more often")
}

func TestWeightedIndexPanicsOnAllZero(t *testing.T) {
	s := rng.NewSource(rng.Seed{1})
	assert.Panics(t, func() { s.WeightedIndex([]uint32{0, 0}) })
}
