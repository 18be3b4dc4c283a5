// Package core implements the match-3 rules engine: grid occupancy, run
// detection, provisional swaps, gravity and top-row refill, sequenced by a
// tick-driven loop. This package is UI-agnostic and deterministic.
package core

import "errors"

// Kind is the logical category of a tile. Two tiles match iff their kinds are equal.
type Kind string

// TileID identifies a single tile for as long as it occupies the grid.
// IDs are allocated by the grid and never reused within one grid.
type TileID uint64

// Tile is a tile value held by a grid slot.
type Tile struct {
	ID   TileID
	Kind Kind
}

// Cell represents a single grid slot.
type Cell struct {
	Filled bool // Whether the slot holds a tile
	Tile   Tile // Valid only when Filled is true
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell holding the given tile.
func Occupied(t Tile) Cell {
	return Cell{Filled: true, Tile: t}
}

// Axis is the direction along which runs are scanned.
type Axis uint8

const (
	Horizontal Axis = iota // +1 step in x
	Vertical               // +1 step in y
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for one step along the axis.
func (a Axis) Delta() (dx, dy int) {
	if a == Vertical {
		return 0, 1
	}
	return 1, 0
}

// Placement pairs a tile with the slot it was added to or removed from.
type Placement struct {
	Coord Coord
	Tile  Tile
}

// Errors returned by the engine. Callers should test with errors.Is.
var (
	// ErrNotAdjacent is returned when an exchange does not satisfy the selection rule.
	ErrNotAdjacent = errors.New("match3: tiles are not selectable as a pair")

	// ErrNotFound is returned when a tile is not currently on the grid.
	ErrNotFound = errors.New("match3: tile not found")

	// ErrNotReady is returned when input arrives outside the awaiting-input phase.
	ErrNotReady = errors.New("match3: board is not awaiting input")

	// ErrExchangeInProgress is returned when a second exchange is requested mid-swap.
	ErrExchangeInProgress = errors.New("match3: exchange already in progress")

	// ErrInvalidConfig is wrapped by every construction-time validation failure.
	ErrInvalidConfig = errors.New("match3: invalid config")
)
