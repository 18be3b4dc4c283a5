package core

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// OutOfRangeError is the panic value for grid access outside [0,W)x[0,H).
// It always indicates a caller bug.
type OutOfRangeError struct {
	X, Y int
	W, H int
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("match3: coordinate (%d,%d) out of range for %dx%d grid", e.X, e.Y, e.W, e.H)
}

// Grid is the sole owner of tile occupancy.
// Cells are stored in row-major order: index = y*W + x, with y=0 the bottom row.
type Grid struct {
	W        int     // Width of the grid
	H        int     // Height of the grid
	CellSize float64 // World-space size of one slot

	cells  []Cell
	nextID TileID
}

// NewGrid creates a grid with all slots empty.
// Dimensions must be positive; they are immutable afterwards.
func NewGrid(w, h int, cellSize float64) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("match3: invalid grid size %dx%d", w, h))
	}
	return &Grid{
		W:        w,
		H:        h,
		CellSize: cellSize,
		cells:    make([]Cell, w*h),
	}
}

// NewGridFromRows builds a grid from text rows listed top row first.
// Each rune is one slot: '.' is empty, any other rune becomes a tile whose
// kind is that rune. Tile IDs are assigned bottom-up, left to right.
func NewGridFromRows(cellSize float64, rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("match3: layout has no rows")
	}
	w := utf8.RuneCountInString(rows[0])
	if w == 0 {
		return nil, fmt.Errorf("match3: layout row 0 is empty")
	}
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != w {
			return nil, fmt.Errorf("match3: layout row %d has %d slots, want %d", i, n, w)
		}
	}

	h := len(rows)
	g := NewGrid(w, h, cellSize)
	for y := 0; y < h; y++ {
		row := []rune(rows[h-1-y])
		for x, r := range row {
			if r == '.' {
				continue
			}
			g.Spawn(x, y, Kind(string(r)))
		}
	}
	return g, nil
}

func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// InBounds returns true if (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) mustInBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(OutOfRangeError{X: x, Y: y, W: g.W, H: g.H})
	}
}

// At returns the cell at (x, y). Panics with OutOfRangeError if out of range.
func (g *Grid) At(x, y int) Cell {
	g.mustInBounds(x, y)
	return g.cells[g.index(x, y)]
}

// TileAt returns the tile at (x, y) and whether the slot is occupied.
// Panics with OutOfRangeError if out of range.
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	cell := g.At(x, y)
	return cell.Tile, cell.Filled
}

// Set overwrites the slot at (x, y) unconditionally.
// Callers are responsible for not orphaning the previous tile.
func (g *Grid) Set(x, y int, cell Cell) {
	g.mustInBounds(x, y)
	if !cell.Filled {
		cell = Empty()
	}
	g.cells[g.index(x, y)] = cell
}

// Remove empties the slot at (x, y) and returns the tile that was there.
func (g *Grid) Remove(x, y int) (Tile, bool) {
	t, ok := g.TileAt(x, y)
	g.cells[g.index(x, y)] = Empty()
	return t, ok
}

// Spawn places a new tile of the given kind at (x, y), allocating a fresh ID.
func (g *Grid) Spawn(x, y int, kind Kind) Tile {
	g.mustInBounds(x, y)
	g.nextID++
	t := Tile{ID: g.nextID, Kind: kind}
	g.cells[g.index(x, y)] = Occupied(t)
	return t
}

// Swap exchanges the contents of two slots.
func (g *Grid) Swap(a, b Coord) {
	g.mustInBounds(a.X, a.Y)
	g.mustInBounds(b.X, b.Y)
	ia, ib := g.index(a.X, a.Y), g.index(b.X, b.Y)
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// IsFull returns true iff every slot is occupied.
func (g *Grid) IsFull() bool {
	for _, cell := range g.cells {
		if !cell.Filled {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of empty slots.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, cell := range g.cells {
		if !cell.Filled {
			n++
		}
	}
	return n
}

// PositionOf locates a tile by ID with a linear scan.
// Returns ErrNotFound if the tile is no longer on the grid.
func (g *Grid) PositionOf(id TileID) (Coord, error) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cell := g.cells[g.index(x, y)]
			if cell.Filled && cell.Tile.ID == id {
				return C(x, y), nil
			}
		}
	}
	return Coord{}, fmt.Errorf("%w: tile %d", ErrNotFound, id)
}

// ToWorld maps a slot to world space, centering the grid at the origin:
// ((x - W/2) * cellSize, (y - H/2) * cellSize), with integer halving.
func (g *Grid) ToWorld(x, y int) (float64, float64) {
	return float64(x-g.W/2) * g.CellSize, float64(y-g.H/2) * g.CellSize
}

// WorldOf is ToWorld for a Coord.
func (g *Grid) WorldOf(c Coord) Point {
	wx, wy := g.ToWorld(c.X, c.Y)
	return Point{X: wx, Y: wy}
}

// Clone returns a deep copy of the grid, including its ID counter.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		W:        g.W,
		H:        g.H,
		CellSize: g.CellSize,
		cells:    cells,
		nextID:   g.nextID,
	}
}

// Equal returns true if two grids have the same dimensions and identical
// occupancy (tile IDs and kinds).
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// SameKinds returns true if two grids hold the same kind in every slot,
// ignoring tile identity.
func (g *Grid) SameKinds(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.cells {
		o := other.cells[i]
		if cell.Filled != o.Filled || cell.Tile.Kind != o.Tile.Kind {
			return false
		}
	}
	return true
}

// Kinds returns the kind in every slot, indexed [y][x]; empty slots are "".
func (g *Grid) Kinds() [][]Kind {
	out := make([][]Kind, g.H)
	for y := 0; y < g.H; y++ {
		out[y] = make([]Kind, g.W)
		for x := 0; x < g.W; x++ {
			if cell := g.cells[g.index(x, y)]; cell.Filled {
				out[y][x] = cell.Tile.Kind
			}
		}
	}
	return out
}

// Rows renders the grid top row first, one rune per slot: the first rune of
// the kind, or '.' for an empty slot. Inverse of NewGridFromRows for
// single-rune kinds.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.H)
	for y := g.H - 1; y >= 0; y-- {
		var sb strings.Builder
		for x := 0; x < g.W; x++ {
			cell := g.cells[g.index(x, y)]
			if !cell.Filled || cell.Tile.Kind == "" {
				sb.WriteRune('.')
				continue
			}
			r, _ := utf8.DecodeRuneInString(string(cell.Tile.Kind))
			sb.WriteRune(r)
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String returns Rows joined by newlines.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
