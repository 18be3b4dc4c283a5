package core

// MotionOrder describes a single tile sliding from one slot to another.
// The grid already reflects the destination; Progress only drives rendering.
type MotionOrder struct {
	Tile     Tile
	From     Coord
	To       Coord
	Progress float64 // 0..1
}

// Done returns true when the motion has finished animating.
func (m MotionOrder) Done() bool {
	return m.Progress >= 1
}

// Position returns the tile's interpolated world position.
func (m MotionOrder) Position(g *Grid) Point {
	return Lerp(g.WorldOf(m.From), g.WorldOf(m.To), clamp01(m.Progress))
}

// GravityResolver compacts columns downward one slot per pass.
type GravityResolver struct {
	grid   *Grid
	orders []MotionOrder
}

// NewGravityResolver creates a resolver over the grid.
func NewGravityResolver(g *Grid) *GravityResolver {
	return &GravityResolver{grid: g}
}

// StepColumnsDown performs one gravity pass and reports whether any tile moved.
func (r *GravityResolver) StepColumnsDown() bool {
	return len(r.Pass()) > 0
}

// Pass scans each column from y=1 upward and drops every tile whose lower
// neighbour is empty by one slot. Moves are committed to the grid as they
// are issued, so a whole stack above a gap shifts in a single pass.
// The issued orders are returned and kept open until animated to completion.
func (r *GravityResolver) Pass() []MotionOrder {
	var issued []MotionOrder
	g := r.grid

	for x := 0; x < g.W; x++ {
		for y := 1; y < g.H; y++ {
			below := g.At(x, y-1)
			if below.Filled {
				continue
			}
			cell := g.At(x, y)
			if !cell.Filled {
				continue
			}

			g.Set(x, y-1, cell)
			g.Set(x, y, Empty())

			issued = append(issued, MotionOrder{
				Tile: cell.Tile,
				From: C(x, y),
				To:   C(x, y-1),
			})
		}
	}

	r.orders = append(r.orders, issued...)
	return issued
}

// Advance moves every open order forward by delta and drops finished ones.
func (r *GravityResolver) Advance(delta float64) {
	if delta < 0 {
		delta = 0
	}
	open := r.orders[:0]
	for _, o := range r.orders {
		o.Progress = clamp01(o.Progress + delta)
		if !o.Done() {
			open = append(open, o)
		}
	}
	r.orders = open
}

// InFlight reports whether any motion order is still animating.
func (r *GravityResolver) InFlight() bool {
	return len(r.orders) > 0
}

// Orders returns a copy of the open motion orders.
func (r *GravityResolver) Orders() []MotionOrder {
	if len(r.orders) == 0 {
		return nil
	}
	out := make([]MotionOrder, len(r.orders))
	copy(out, r.orders)
	return out
}
