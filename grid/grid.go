// Package grid provides the 3D axis-aligned primitives shared by every
// other package in this module: points, extents, row-major linear
// indexing, and a generic cell container.
//
// The canonical iteration order is fixed across the whole module: Y
// varies slowest, then Z, then X varies fastest. Any code that stores a
// linear index and later reconstitutes a Point (the collapse loop's
// removal stack, in particular) depends on this order never changing.
package grid

import "fmt"

// Point is an integer coordinate triple. The zero value is the origin.
type Point struct {
	X, Y, Z int
}

// Add returns the componentwise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns the componentwise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Neg returns the componentwise negation of p.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y, -p.Z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// Extent is a minimum point plus a local supremum (size). Volume is the
// product of the sizes; a zero size on any axis gives an empty extent.
type Extent struct {
	Min  Point
	Size Point
}

// NewExtent builds an extent from a minimum point and per-axis size.
func NewExtent(min, size Point) Extent {
	return Extent{Min: min, Size: size}
}

// Volume returns the number of cells the extent covers.
func (e Extent) Volume() int {
	return e.Size.X * e.Size.Y * e.Size.Z
}

// Index converts a world point to the dense linear index used to store
// per-cell data, or reports ok=false if the point falls outside the
// extent. The mapping is a pure function of the extent and is stable for
// the lifetime of any grid built over it.
func (e Extent) Index(p Point) (idx int, ok bool) {
	lx, ly, lz := p.X-e.Min.X, p.Y-e.Min.Y, p.Z-e.Min.Z
	if lx < 0 || lx >= e.Size.X || ly < 0 || ly >= e.Size.Y || lz < 0 || lz >= e.Size.Z {
		return 0, false
	}
	return (ly*e.Size.Z+lz)*e.Size.X + lx, true
}

// PointAt is the inverse of Index: it reconstitutes the world point for
// a linear index previously produced by Index over the same extent.
func (e Extent) PointAt(idx int) Point {
	lx := idx % e.Size.X
	rest := idx / e.Size.X
	lz := rest % e.Size.Z
	ly := rest / e.Size.Z
	return Point{e.Min.X + lx, e.Min.Y + ly, e.Min.Z + lz}
}

// Contains reports whether p falls inside the extent.
func (e Extent) Contains(p Point) bool {
	_, ok := e.Index(p)
	return ok
}

// Wrap folds a point into the extent toroidally, independently on each
// axis. It is used for the required toroidal reads during pattern
// extraction (§4.1); output grids never call it, since outputs are
// non-toroidal.
func (e Extent) Wrap(p Point) Point {
	return Point{
		X: e.Min.X + floorMod(p.X-e.Min.X, e.Size.X),
		Y: e.Min.Y + floorMod(p.Y-e.Min.Y, e.Size.Y),
		Z: e.Min.Z + floorMod(p.Z-e.Min.Z, e.Size.Z),
	}
}

func floorMod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Range visits every point of the extent exactly once, in the canonical
// row-major order (Y slowest, then Z, then X).
func (e Extent) Range(fn func(Point)) {
	for ly := 0; ly < e.Size.Y; ly++ {
		for lz := 0; lz < e.Size.Z; lz++ {
			for lx := 0; lx < e.Size.X; lx++ {
				fn(Point{e.Min.X + lx, e.Min.Y + ly, e.Min.Z + lz})
			}
		}
	}
}

func (e Extent) String() string {
	return fmt.Sprintf("Extent{Min: %s, Size: %s}", e.Min, e.Size)
}

// CellSource is the external "input grid" contract (§6): anything that
// can report its extent and return a cell value for a world point. Cell
// values must be comparable so patterns extracted from them can be
// deduplicated.
type CellSource[T any] interface {
	Extent() Extent
	At(p Point) T
}

// Grid is a dense, owned store of cells of type T over an Extent. It
// implements CellSource and is also used internally wherever the core
// needs its own addressable array of per-cell data (the pattern-id
// lattice built during extraction, rendered output, and so on).
type Grid[T any] struct {
	extent Extent
	cells  []T
}

// New allocates a Grid over extent with zero-valued cells.
func New[T any](extent Extent) *Grid[T] {
	return &Grid[T]{extent: extent, cells: make([]T, extent.Volume())}
}

// Fill allocates a Grid over extent with every cell set to value.
func Fill[T any](extent Extent, value T) *Grid[T] {
	g := New[T](extent)
	for i := range g.cells {
		g.cells[i] = value
	}
	return g
}

// Extent returns the grid's extent.
func (g *Grid[T]) Extent() Extent { return g.extent }

// At returns the cell at world point p. It panics if p is out of bounds.
func (g *Grid[T]) At(p Point) T {
	idx, ok := g.extent.Index(p)
	if !ok {
		panic(fmt.Sprintf("grid: point %s out of bounds of %s", p, g.extent))
	}
	return g.cells[idx]
}

// AtIndex returns the cell at a precomputed linear index, without bounds
// checking.
func (g *Grid[T]) AtIndex(idx int) T { return g.cells[idx] }

// Set assigns the cell at world point p. It panics if p is out of bounds.
func (g *Grid[T]) Set(p Point, v T) {
	idx, ok := g.extent.Index(p)
	if !ok {
		panic(fmt.Sprintf("grid: point %s out of bounds of %s", p, g.extent))
	}
	g.cells[idx] = v
}

// SetIndex assigns the cell at a precomputed linear index, without
// bounds checking.
func (g *Grid[T]) SetIndex(idx int, v T) { g.cells[idx] = v }

// Cells returns the grid's backing storage in canonical order. Callers
// must not retain a mutable reference across further grid mutation.
func (g *Grid[T]) Cells() []T { return g.cells }
