// Package wave implements the Wave (§3, §4.5) and the collapse loop's
// observe/propagate state machine (§4.5, §4.6): the per-cell
// possible-pattern sets, the cached entropy used to pick the next cell,
// the support counters that make propagation O(1) per removal, and the
// Continue/Success/Failure state machine that drives a run to
// completion.
//
// Grounded on original_source/src/wave.rs (Wave, remove_pattern,
// reduce_entropy, choose_lowest_entropy_slot) and generate.rs (Generator,
// UpdateResult, propagate_constraints).
package wave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/example/wfc/bitfield"
	"github.com/example/wfc/compat"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/offsets"
	"github.com/example/wfc/pattern"
	"github.com/example/wfc/rng"
)

// State is one of the three collapse-loop states (§4.5).
type State int

const (
	// Continue indicates further Step calls are required.
	Continue State = iota
	// Success indicates the output is fully determined.
	Success
	// Failure indicates propagation emptied some cell; the Wave must not
	// be used again.
	Failure
)

func (s State) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// defaultEpsilon is the tie-break noise scale added to cached entropy
// during selection (§4.5). The reference implementation uses 0.001.
const defaultEpsilon = 0.001

// Config holds the small set of runtime knobs the collapse loop needs
// beyond the pattern table, compatibility relation, and output extent.
// This intentionally does not grow into a general configuration file
// layer (no viper/cobra wiring, see SPEC_FULL.md §3) — it is the same
// shape as the teacher's own constructor parameters.
type Config struct {
	// Epsilon is the tie-break noise scale. Zero means defaultEpsilon.
	Epsilon float64
}

// ErrContradiction is returned by Run/Step's caller-facing helpers to
// wrap a terminal Failure with the step count it occurred at (§7).
var ErrContradiction = errors.New("wave: propagation reached a contradiction")

type removal struct {
	cellIdx int
	pattern uint16
}

// Wave is the per-cell data structure that tracks which patterns remain
// possible, their cached entropy, and the support counters used to
// detect newly impossible patterns in O(1) (§3).
type Wave struct {
	table  *pattern.Table
	rel    *compat.Relation
	offs   *offsets.Group
	extent grid.Extent
	cfg    Config

	numPatterns int
	numOffsets  int
	totalCells  int

	possible []bitfield.PatternSet
	entropy  []entropyCache
	support  [][]int16

	collapsedCount int
	removals       []removal
	state          State
	failedCell     int

	rngSrc *rng.Source
	steps  int
}

// New builds a Wave sized to outputExtent from an immutable pattern
// table and compatibility relation (§3's lifecycle: "Wave is created
// sized to the output; PatternTable and C are built once ... and are
// immutable for the remainder of the run").
func New(table *pattern.Table, rel *compat.Relation, group *offsets.Group, outputExtent grid.Extent, seed rng.Seed, cfg Config) (*Wave, error) {
	if outputExtent.Volume() <= 0 {
		return nil, errors.New("wave: output extent must be non-empty")
	}
	if table.NumPatterns == 0 {
		return nil, errors.New("wave: pattern table has no patterns")
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = defaultEpsilon
	}

	numPatterns := table.NumPatterns
	numOffsets := group.Len()
	totalCells := outputExtent.Volume()

	full := bitfield.Full(numPatterns)
	initialEntropy := computeEntropy(table, full)
	initialSupport := rel.InitialSupport(group.Opposite)

	// A pattern table with a single pattern starts every cell already
	// collapsed (nothing to observe away); collapsedCount must reflect
	// that from the outset or determined() never becomes true.
	initialCollapsed := 0
	if full.Len() <= 1 {
		initialCollapsed = totalCells
	}

	w := &Wave{
		table:          table,
		rel:            rel,
		offs:           group,
		extent:         outputExtent,
		cfg:            cfg,
		numPatterns:    numPatterns,
		numOffsets:     numOffsets,
		totalCells:     totalCells,
		possible:       make([]bitfield.PatternSet, totalCells),
		entropy:        make([]entropyCache, totalCells),
		support:        make([][]int16, totalCells),
		rngSrc:         rng.NewSource(seed),
		state:          Continue,
		collapsedCount: initialCollapsed,
	}
	for i := 0; i < totalCells; i++ {
		w.possible[i] = full.Clone()
		w.entropy[i] = initialEntropy
		support := make([]int16, len(initialSupport))
		copy(support, initialSupport)
		w.support[i] = support
	}

	slog.Debug("wave initialized", "cells", totalCells, "patterns", numPatterns, "offsets", numOffsets)
	return w, nil
}

// CollapsedCount returns the number of cells whose possible set has size
// <= 1, for progress reporting (§6).
func (w *Wave) CollapsedCount() int { return w.collapsedCount }

// TotalCells returns the number of cells in the output extent.
func (w *Wave) TotalCells() int { return w.totalCells }

// State returns the current state of the collapse loop.
func (w *Wave) State() State { return w.state }

// FailedCell returns the output-extent cell index that emptied when the
// Wave reached Failure. Its value is meaningless before Failure.
func (w *Wave) FailedCell() int { return w.failedCell }

// determined reports the derived invariant from §3:
// determined <=> collapsed_count == totalCells.
func (w *Wave) determined() bool { return w.collapsedCount == w.totalCells }

// Snapshot returns a read-only grid of each cell's current possible set,
// for per-frame visualization (§6). Each set is cloned so the caller
// cannot mutate Wave state through the snapshot.
func (w *Wave) Snapshot() *grid.Grid[bitfield.PatternSet] {
	out := grid.New[bitfield.PatternSet](w.extent)
	for i := 0; i < w.totalCells; i++ {
		out.SetIndex(i, w.possible[i].Clone())
	}
	return out
}

// Result returns the single remaining pattern per cell (§4.6). It panics
// if called before Step has returned Success, per §7's classification of
// "result() called before Success" as a programmer error.
func (w *Wave) Result() *grid.Grid[uint16] {
	if w.state != Success {
		panic("wave: Result called before Success")
	}
	out := grid.New[uint16](w.extent)
	for i := 0; i < w.totalCells; i++ {
		out.SetIndex(i, w.possible[i].First())
	}
	return out
}

// chooseLeastEntropy scans every cell and returns the index with the
// smallest noise-perturbed entropy (§4.5). Every cell is visited on
// every call, exactly as the Rust reference's choose_lowest_entropy_slot
// does, which is what keeps selection deterministic under a fixed seed:
// the draw sequence consumed here depends only on cell iteration order.
func (w *Wave) chooseLeastEntropy() (int, float64) {
	// bestH starts from cell 0's own perturbed entropy rather than a +Inf
	// sentinel: when every remaining cell is tied at +Inf (a single-pattern
	// table has no other kind of cell), a sentinel-vs-sentinel "<" compare
	// never picks a winner and every later index would be skipped too.
	bestIdx := 0
	bestH := w.entropy[0].h + w.cfg.Epsilon*w.rngSrc.Float64()
	if math.IsNaN(bestH) {
		panic("wave: NaN entropy at cell 0")
	}
	for idx := 1; idx < w.totalCells; idx++ {
		noise := w.rngSrc.Float64()
		h := w.entropy[idx].h + w.cfg.Epsilon*noise
		if math.IsNaN(h) {
			panic(fmt.Sprintf("wave: NaN entropy at cell %d", idx))
		}
		if h < bestH {
			bestH = h
			bestIdx = idx
		}
	}
	return bestIdx, bestH
}

// removePattern removes p from cell's possible set, updating the entropy
// cache and collapsed count, and zeroing the pattern's support so it can
// no longer trigger removals of its own (§4.5). It returns true iff the
// cell's possible set is now empty (a contradiction).
func (w *Wave) removePattern(cellIdx int, p uint16) bool {
	set := &w.possible[cellIdx]
	if !set.Contains(p) {
		panic(fmt.Sprintf("wave: remove_pattern called with pattern %d not possible at cell %d", p, cellIdx))
	}
	set.Remove(p)

	empty := false
	switch set.Len() {
	case 0:
		empty = true
	case 1:
		w.entropy[cellIdx] = collapsedEntropy
		w.collapsedCount++
	default:
		c := &w.entropy[cellIdx]
		weight := float64(w.table.Weight(p))
		c.sumWeights -= weight
		c.sumWeightsLogWeights -= weight * math.Log2(weight)
		c.h = entropyFromSums(c.sumWeights, c.sumWeightsLogWeights)
	}

	support := w.support[cellIdx]
	base := int(p) * w.numOffsets
	for o := 0; o < w.numOffsets; o++ {
		support[base+o] = 0
	}

	w.removals = append(w.removals, removal{cellIdx: cellIdx, pattern: p})
	return empty
}

// observe collapses cellIdx to a single pattern sampled from its
// possible set, weighted by pattern frequency, then runs propagation
// (§4.5). It returns false iff propagation reaches a contradiction.
func (w *Wave) observe(cellIdx int) bool {
	set := w.possible[cellIdx]
	q := w.samplePattern(set)

	var toRemove []uint16
	set.Range(func(p uint16) {
		if p != q {
			toRemove = append(toRemove, p)
		}
	})
	// q always remains possible at this cell after these removals, so
	// none of these calls can themselves report empty.
	for _, p := range toRemove {
		w.removePattern(cellIdx, p)
	}

	slog.Debug("observed cell", "cell", cellIdx, "pattern", q)
	return w.propagate()
}

// samplePattern draws one pattern from set, weighted by pattern.Table
// frequencies, using a single Float64 draw (§4.5's "weighted random
// selection").
func (w *Wave) samplePattern(set bitfield.PatternSet) uint16 {
	ids := make([]uint16, 0, set.Len())
	weights := make([]uint32, 0, set.Len())
	set.Range(func(p uint16) {
		ids = append(ids, p)
		weights = append(weights, w.table.Weight(p))
	})
	return ids[w.rngSrc.WeightedIndex(weights)]
}

// propagate drains the removal stack, flood-filling removals of
// now-impossible patterns to neighboring cells (§4.5). It returns false
// iff some cell's possible set becomes empty.
func (w *Wave) propagate() bool {
	ok := true
	for len(w.removals) > 0 {
		last := len(w.removals) - 1
		r := w.removals[last]
		w.removals = w.removals[:last]

		v := w.extent.PointAt(r.cellIdx)
		for _, oid := range w.offs.IDs() {
			n := v.Add(w.offs.At(oid))
			nIdx, inside := w.extent.Index(n)
			if !inside {
				continue
			}

			w.rel.Iterate(r.pattern, oid, func(q uint16) {
				support := w.support[nIdx]
				idx := int(q)*w.numOffsets + oid
				support[idx]--
				if support[idx] == 0 {
					if w.removePattern(nIdx, q) {
						ok = false
						w.failedCell = nIdx
					}
				}
			})
			if !ok {
				slog.Warn("contradiction during propagation", "cell", nIdx)
				return false
			}
		}
	}
	return ok
}

// Step advances the collapse loop by one observe+propagate cycle (§4.5).
// Once the state machine reaches Success or Failure, further calls
// return the same terminal state without mutating the Wave.
func (w *Wave) Step() State {
	if w.state != Continue {
		return w.state
	}
	if w.determined() {
		w.state = Success
		return Success
	}
	w.steps++

	cellIdx, h := w.chooseLeastEntropy()
	slog.Debug("chose cell", "cell", cellIdx, "entropy", h, "step", w.steps)

	if !w.observe(cellIdx) {
		w.state = Failure
		return Failure
	}
	if w.determined() {
		w.state = Success
		return Success
	}
	return Continue
}

// Run drives Step to completion, treating context cancellation
// identically to Failure (§5): "Cancellation is treated identically to
// Failure at the boundary (no output produced)."
func (w *Wave) Run(ctx context.Context) State {
	for {
		select {
		case <-ctx.Done():
			if w.state == Continue {
				w.state = Failure
			}
			return w.state
		default:
		}

		if s := w.Step(); s != Continue {
			return s
		}
	}
}

// Steps returns the number of Step calls that ran an observe+propagate
// cycle so far; calls that return a terminal state without observing
// are not counted (§8 property 8: termination in at most totalCells
// steps).
func (w *Wave) Steps() int { return w.steps }
