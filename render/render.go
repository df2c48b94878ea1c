// Package render is the external glue the distilled spec deliberately
// leaves unspecified at the bit-layout level (§1, §6): turning a
// collapsed output of PatternIds back into cell values the caller can
// actually display, and observing per-step wave snapshots while a run is
// in progress.
//
// Grounded on original_source/src/image.rs's color_final_patterns
// family and original_source/src/lib.rs's FrameConsumer/NilFrameConsumer.
package render

import (
	"github.com/example/wfc/bitfield"
	"github.com/example/wfc/grid"
	"github.com/example/wfc/pattern"
)

// FrameConsumer observes one possible-set snapshot per Step, mirroring
// the Rust reference's FrameConsumer trait. Wave.Snapshot produces the
// frame; the core never constructs a FrameConsumer itself, so driving
// code controls whether (and how) intermediate states are visualized.
type FrameConsumer interface {
	UseFrame(frame *grid.Grid[bitfield.PatternSet])
}

// NilFrameConsumer discards every frame. It is the default when a caller
// has no use for intermediate visualization, matching the reference's
// own NilFrameConsumer.
type NilFrameConsumer struct{}

// UseFrame discards frame.
func (NilFrameConsumer) UseFrame(*grid.Grid[bitfield.PatternSet]) {}

// Representative returns the sub-grid extent, in the original input
// grid's coordinates, that first produced pattern p during extraction.
func Representative(table *pattern.Table, p uint16) grid.Extent {
	return table.Representatives[p]
}

// ToGrid renders a collapsed result (one PatternId per output cell) back
// to cell values of the original input type, by reading each pattern's
// representative anchor cell from input. This is the anchor-cell
// simplification color_final_patterns's full-tile stamping reduces to
// when patternSize is 1x1x1 on every axis (the exact case for non-
// overlapping single-cell patterns) and a reasonable approximation for
// larger patterns otherwise, since full-tile stamping requires resolving
// overlap between adjacent output blocks that this module's Wave does
// not itself track (the overlapping-constraint resolution happens during
// propagation, not at render time).
func ToGrid[T any](result *grid.Grid[uint16], input grid.CellSource[T], table *pattern.Table) *grid.Grid[T] {
	extent := result.Extent()
	inputExtent := input.Extent()
	out := grid.New[T](extent)
	for i := 0; i < extent.Volume(); i++ {
		p := result.AtIndex(i)
		anchor := Representative(table, p).Min
		out.SetIndex(i, input.At(inputExtent.Wrap(anchor)))
	}
	return out
}
