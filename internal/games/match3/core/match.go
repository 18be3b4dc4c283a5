package core

import "sort"

// MinRun is the shortest run of equal kinds that counts as a match.
const MinRun = 3

// MatchRun is a maximal sequence of at least MinRun equal-kind tiles along one axis.
type MatchRun struct {
	Origin Coord // Lowest-x (horizontal) or lowest-y (vertical) member
	Axis   Axis
	Length int
	Kind   Kind
}

// Coords returns every slot covered by the run.
func (r MatchRun) Coords() []Coord {
	dx, dy := r.Axis.Delta()
	coords := make([]Coord, r.Length)
	for i := range coords {
		coords[i] = r.Origin.Add(dx*i, dy*i)
	}
	return coords
}

// CoordSet is an unordered set of slots.
type CoordSet map[Coord]struct{}

// Add inserts a coordinate.
func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

// Has reports whether the coordinate is in the set.
func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the coordinates ordered by row, then column.
func (s CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// MatchDetector scans a grid for runs. It holds no state of its own.
type MatchDetector struct {
	grid *Grid
}

// NewMatchDetector creates a detector reading the given grid.
func NewMatchDetector(g *Grid) *MatchDetector {
	return &MatchDetector{grid: g}
}

// HasMatchAt returns true iff the three consecutive slots starting at (x, y)
// along axis are occupied by tiles of equal kind. Any slot that is empty or
// outside the grid yields false.
func (d *MatchDetector) HasMatchAt(x, y int, axis Axis) bool {
	dx, dy := axis.Delta()
	var kind Kind
	for i := 0; i < MinRun; i++ {
		cx, cy := x+dx*i, y+dy*i
		if !d.grid.InBounds(cx, cy) {
			return false
		}
		cell := d.grid.At(cx, cy)
		if !cell.Filled {
			return false
		}
		if i == 0 {
			kind = cell.Tile.Kind
		} else if cell.Tile.Kind != kind {
			return false
		}
	}
	return true
}

// RunLength counts equal-kind tiles starting at (x, y) and extending in the
// positive axis direction, including the start tile. It stops at the first
// mismatch, empty slot, or grid edge. The result is at least 1, including
// for an empty start slot. Panics with OutOfRangeError if (x, y) is out of range.
func (d *MatchDetector) RunLength(x, y int, axis Axis) int {
	first := d.grid.At(x, y)
	if !first.Filled {
		return 1
	}

	dx, dy := axis.Delta()
	length := 1
	for cx, cy := x+dx, y+dy; d.grid.InBounds(cx, cy); cx, cy = cx+dx, cy+dy {
		other := d.grid.At(cx, cy)
		if !other.Filled || other.Tile.Kind != first.Tile.Kind {
			break
		}
		length++
	}
	return length
}

// AnyMatchExists scans every start position where a run fits and returns on
// the first hit.
func (d *MatchDetector) AnyMatchExists() bool {
	w, h := d.grid.W, d.grid.H
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if x <= w-MinRun && d.HasMatchAt(x, y, Horizontal) {
				return true
			}
			if y <= h-MinRun && d.HasMatchAt(x, y, Vertical) {
				return true
			}
		}
	}
	return false
}

// FindRuns returns every maximal run: rows first (bottom to top), then
// columns (left to right).
func (d *MatchDetector) FindRuns() []MatchRun {
	var runs []MatchRun
	w, h := d.grid.W, d.grid.H

	for y := 0; y < h; y++ {
		for x := 0; x < w; {
			n := d.RunLength(x, y, Horizontal)
			if cell := d.grid.At(x, y); cell.Filled && n >= MinRun {
				runs = append(runs, MatchRun{Origin: C(x, y), Axis: Horizontal, Length: n, Kind: cell.Tile.Kind})
			}
			x += n
		}
	}

	// Column scan is bounded by the grid height.
	for x := 0; x < w; x++ {
		for y := 0; y < h; {
			n := d.RunLength(x, y, Vertical)
			if cell := d.grid.At(x, y); cell.Filled && n >= MinRun {
				runs = append(runs, MatchRun{Origin: C(x, y), Axis: Vertical, Length: n, Kind: cell.Tile.Kind})
			}
			y += n
		}
	}

	return runs
}

// FindAllMatchedCoordinates returns the union of all run members. A tile in
// both a horizontal and a vertical run appears once.
func (d *MatchDetector) FindAllMatchedCoordinates() CoordSet {
	set := make(CoordSet)
	for _, run := range d.FindRuns() {
		for _, c := range run.Coords() {
			set.Add(c)
		}
	}
	return set
}
