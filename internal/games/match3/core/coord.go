package core

import "fmt"

// Coord represents a slot position on the grid.
// X increases to the right, Y increases upward: y=0 is the bottom row and
// new tiles enter at y=H-1.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Distance returns the absolute per-axis distance to another coordinate.
func (c Coord) Distance(other Coord) (dx, dy int) {
	dx = abs(c.X - other.X)
	dy = abs(c.Y - other.Y)
	return dx, dy
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx, dy := c.Distance(other)
	return dx + dy
}

// Point is a position in world space, as produced by Grid.ToWorld.
type Point struct {
	X float64
	Y float64
}

// Lerp interpolates linearly between two points.
func Lerp(from, to Point, t float64) Point {
	return Point{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}

// SmoothLerp interpolates between two points along a smooth-step curve,
// so motion eases in and out.
func SmoothLerp(from, to Point, t float64) Point {
	return Lerp(from, to, smoothStep(t))
}

// smoothStep maps t in [0,1] onto 3t^2 - 2t^3.
func smoothStep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
