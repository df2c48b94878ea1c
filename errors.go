// Package wfc is the public facade over pattern extraction and the
// collapse loop (§2, §6): Build turns an input grid into a PatternTable
// and compatibility Relation, NewWave sizes a Wave to an output extent,
// and Run drives it to a terminal state.
//
// Grounded on original_source/src/lib.rs and generate.rs's combined
// (Generator::new, Generator::update) surface, flattened into the
// teacher's own top-level package style (noise.NewSimplex, noise.NewFBM
// live at package scope rather than behind a sub-package facade).
package wfc

import (
	"errors"
	"fmt"

	"github.com/example/wfc/wave"
)

// Errors returned by Build and Run. Each corresponds to one branch of
// the error taxonomy in SPEC_FULL.md §9; programmer-error conditions
// (NaN entropy, Result before Success, double-removal) remain panics
// raised by the wave package itself, not values here.
var (
	// ErrNumPatterns is returned by Build when extraction would exceed
	// pattern.MaxID distinct patterns.
	ErrNumPatterns = errors.New("wfc: too many distinct patterns")

	// ErrInvalidPatternSize is returned by Build when patternSize has a
	// non-positive component on any axis.
	ErrInvalidPatternSize = errors.New("wfc: pattern size must be positive on every axis")

	// ErrInvalidExtent is returned by NewWave when the output extent is
	// empty.
	ErrInvalidExtent = errors.New("wfc: output extent must be non-empty")

	// ErrCanceled is returned by Run when the context was canceled
	// before or during the collapse loop, per §5's "cancellation is
	// treated identically to Failure at the boundary".
	ErrCanceled = errors.New("wfc: run canceled")
)

// ContradictionError wraps wave.ErrContradiction with the step count and
// cell index the contradiction occurred at (§7, §9), so callers that log
// or retry with a different seed have something to act on.
type ContradictionError struct {
	Step int
	Cell int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at step %d, cell %d", e.Step, e.Cell)
}

func (e *ContradictionError) Unwrap() error { return wave.ErrContradiction }

// ErrContradiction is the sentinel callers should compare against with
// errors.Is when Run fails due to a genuine contradiction rather than
// cancellation; it is wave's own sentinel, re-exported here so callers
// never need to import the wave package directly.
var ErrContradiction = wave.ErrContradiction
