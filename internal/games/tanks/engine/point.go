// Package engine implements the tank arena simulation.
// It is UI-agnostic and deterministic: all randomness comes from a single
// seeded generator and all mutation happens inside Simulation.Tick.
package engine

import "fmt"

// Point is a grid coordinate. X is the row and Y is the column,
// matching the row-major layout of stage tables.
type Point struct {
	X int
	Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the adjacent point one cell in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Offset()
	return p.Add(dx, dy)
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
