package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate lies outside the grid.
var ErrOutOfBounds = errors.New("tanks: coordinate out of bounds")

// Grid is a fixed-size rows x cols array of cells stored in row-major order.
type Grid struct {
	Rows  int
	Cols  int
	cells []Cell
}

// NewGrid creates a grid of empty cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range g.cells {
		g.cells[i].Tile = NewTile(TileNone)
	}
	return g
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Rows && p.Y >= 0 && p.Y < g.Cols
}

// Cell returns the cell at p, or ErrOutOfBounds.
func (g *Grid) Cell(p Point) (*Cell, error) {
	if !g.InBounds(p) {
		return nil, fmt.Errorf("cell %v in %dx%d grid: %w", p, g.Rows, g.Cols, ErrOutOfBounds)
	}
	return &g.cells[p.X*g.Cols+p.Y], nil
}

// at returns the cell at p. The caller must have checked bounds;
// an out-of-bounds access here is a logic bug.
func (g *Grid) at(p Point) *Cell {
	c, err := g.Cell(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, c *Cell)) {
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			fn(Point{X: x, Y: y}, &g.cells[x*g.Cols+y])
		}
	}
}
