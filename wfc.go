package wfc

import (
	"context"
	"errors"

	"github.com/example/wfc/compat"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/offsets"
	"github.com/example/wfc/pattern"
	"github.com/example/wfc/rng"
	"github.com/example/wfc/wave"
)

// Options bundles the run-time knobs the collapse loop needs beyond the
// example input itself: pattern size, offset group, output extent, and
// seed. This stays a plain struct rather than growing a config-file
// layer (no cobra/viper wiring, SPEC_FULL.md §3) — the teacher's own
// constructors (NewSimplex(seed), NewFBM(seed)) take their knobs the
// same direct way.
type Options struct {
	// PatternSize is the sub-grid size extracted from the input.
	PatternSize grid.Point
	// Offsets is the neighborhood offset group (offsets.Edge2D() or
	// offsets.Face3D(), or a caller-supplied group).
	Offsets *offsets.Group
	// OutputExtent is the size and origin of the generated grid.
	OutputExtent grid.Extent
	// Seed drives the deterministic RNG (§5, §8 property 7).
	Seed rng.Seed
	// Epsilon is the entropy tie-break noise scale; zero means the
	// wave package's default.
	Epsilon float64
}

// Build extracts a PatternTable and compatibility Relation from an
// example input grid, mirroring generate.rs's combined
// process_patterns_in_lattice step that a Generator is built from.
func Build[T comparable](input grid.CellSource[T], opts Options) (*pattern.Table, *compat.Relation, error) {
	if opts.PatternSize.X <= 0 || opts.PatternSize.Y <= 0 || opts.PatternSize.Z <= 0 {
		return nil, nil, ErrInvalidPatternSize
	}

	table, rel, err := pattern.Extract[T](input, opts.PatternSize, opts.Offsets)
	if err != nil {
		switch {
		case errors.Is(err, pattern.ErrInvalidPatternSize):
			return nil, nil, ErrInvalidPatternSize
		case errors.Is(err, pattern.ErrEmptyInput):
			return nil, nil, ErrInvalidExtent
		case errors.Is(err, pattern.ErrTooManyPatterns):
			return nil, nil, ErrNumPatterns
		default:
			return nil, nil, err
		}
	}
	return table, rel, nil
}

// NewWave sizes a Wave to opts.OutputExtent from a PatternTable and
// Relation previously built by Build, mirroring Generator::new.
func NewWave(table *pattern.Table, rel *compat.Relation, opts Options) (*wave.Wave, error) {
	if opts.OutputExtent.Volume() <= 0 {
		return nil, ErrInvalidExtent
	}
	cfg := wave.Config{Epsilon: opts.Epsilon}
	w, err := wave.New(table, rel, opts.Offsets, opts.OutputExtent, opts.Seed, cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Run drives w to a terminal state, then returns the collapsed result
// or a caller-facing error (§5, §7, §9). Cancellation and genuine
// propagation contradictions are both reported as errors, never as a
// panic: only programmer-error conditions (Result called before
// Success, a double removal) panic, and those stay inside the wave
// package's own API surface.
func Run(ctx context.Context, w *wave.Wave) (*grid.Grid[uint16], error) {
	canceledBefore := ctx.Err() != nil

	switch w.Run(ctx) {
	case wave.Success:
		return w.Result(), nil
	case wave.Failure:
		if canceledBefore || ctx.Err() != nil {
			return nil, ErrCanceled
		}
		return nil, &ContradictionError{Step: w.Steps(), Cell: w.FailedCell()}
	default:
		// wave.Wave.Run never returns Continue; this branch only exists
		// so a future wave.State value fails loudly instead of silently
		// reporting success.
		panic("wfc: Run returned a non-terminal state")
	}
}
