package core

// IntNSource is the random source used for spawning.
// *math/rand/v2.Rand satisfies it; tests may plug in fixed sequences.
type IntNSource interface {
	IntN(n int) int
}

// KindSource supplies the set of spawnable kinds.
type KindSource interface {
	Kinds() []Kind
}

// KindSet is a fixed list of kinds.
type KindSet []Kind

// Kinds returns the set itself.
func (s KindSet) Kinds() []Kind {
	return s
}

// Repopulator spawns new tiles into empty slots.
type Repopulator struct {
	grid  *Grid
	kinds KindSource
	rng   IntNSource
}

// NewRepopulator creates a repopulator. The kind source must supply at least one kind.
func NewRepopulator(g *Grid, kinds KindSource, rng IntNSource) *Repopulator {
	return &Repopulator{grid: g, kinds: kinds, rng: rng}
}

// FillTopRow spawns a random tile into every empty slot of the top row,
// independently per column. It does not look for matches it may create.
func (r *Repopulator) FillTopRow() []Placement {
	var placed []Placement
	top := r.grid.H - 1
	for x := 0; x < r.grid.W; x++ {
		if r.grid.At(x, top).Filled {
			continue
		}
		t := r.grid.Spawn(x, top, r.pick())
		placed = append(placed, Placement{Coord: C(x, top), Tile: t})
	}
	return placed
}

// FillAll spawns a random tile into every empty slot, bottom row first.
// Used to build the starting board.
func (r *Repopulator) FillAll() []Placement {
	var placed []Placement
	for y := 0; y < r.grid.H; y++ {
		for x := 0; x < r.grid.W; x++ {
			if r.grid.At(x, y).Filled {
				continue
			}
			t := r.grid.Spawn(x, y, r.pick())
			placed = append(placed, Placement{Coord: C(x, y), Tile: t})
		}
	}
	return placed
}

func (r *Repopulator) pick() Kind {
	kinds := r.kinds.Kinds()
	return kinds[r.rng.IntN(len(kinds))]
}
