package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestNewGridFromRowsOrientation(t *testing.T) {
	g := mustGrid(t,
		"ABC",
		"DE.",
	)

	if g.W != 3 || g.H != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", g.W, g.H)
	}

	testCases := []struct {
		x, y   int
		filled bool
		kind   core.Kind
	}{
		{0, 0, true, "D"},
		{1, 0, true, "E"},
		{2, 0, false, ""},
		{0, 1, true, "A"},
		{2, 1, true, "C"},
	}

	for _, tc := range testCases {
		tile, ok := g.TileAt(tc.x, tc.y)
		if ok != tc.filled {
			t.Errorf("TileAt(%d,%d) filled = %v, want %v", tc.x, tc.y, ok, tc.filled)
		}
		if ok && tile.Kind != tc.kind {
			t.Errorf("TileAt(%d,%d) kind = %q, want %q", tc.x, tc.y, tile.Kind, tc.kind)
		}
	}
}

func TestNewGridFromRowsErrors(t *testing.T) {
	if _, err := core.NewGridFromRows(1); err == nil {
		t.Error("expected error for no rows")
	}
	if _, err := core.NewGridFromRows(1, "AB", "ABC"); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestGridRowsRoundTrip(t *testing.T) {
	rows := []string{"AB.", "C.A", "BBC"}
	g := mustGrid(t, rows...)

	got := g.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], rows[i])
		}
	}
	if g.String() != "AB.\nC.A\nBBC" {
		t.Errorf("String() = %q", g.String())
	}
}

func TestGridIsFull(t *testing.T) {
	g := mustGrid(t, "AB", "CD")
	if !g.IsFull() {
		t.Error("expected full grid")
	}

	g.Set(1, 1, core.Empty())
	if g.IsFull() {
		t.Error("expected non-full grid after clearing a slot")
	}
	if g.EmptyCount() != 1 {
		t.Errorf("EmptyCount() = %d, want 1", g.EmptyCount())
	}

	g.Spawn(1, 1, "Z")
	if !g.IsFull() {
		t.Error("expected full grid after spawn")
	}
}

func TestGridOutOfRangePanics(t *testing.T) {
	g := core.NewGrid(3, 4, 1)

	testCases := []struct {
		name string
		fn   func()
	}{
		{"TileAt negative x", func() { g.TileAt(-1, 0) }},
		{"TileAt x == W", func() { g.TileAt(3, 0) }},
		{"TileAt y == H", func() { g.TileAt(0, 4) }},
		{"Set negative y", func() { g.Set(0, -1, core.Empty()) }},
		{"Swap out of range", func() { g.Swap(core.C(0, 0), core.C(0, 9)) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expectOutOfRange(t, tc.fn)
		})
	}
}

func TestGridPositionOf(t *testing.T) {
	g := mustGrid(t, "AB", "CD")

	tile, _ := g.TileAt(0, 0)
	pos, err := g.PositionOf(tile.ID)
	if err != nil {
		t.Fatalf("PositionOf error: %v", err)
	}
	if pos != core.C(0, 0) {
		t.Errorf("PositionOf = %v, want (0,0)", pos)
	}

	// Identity follows the tile through a swap
	g.Swap(core.C(0, 0), core.C(1, 1))
	pos, err = g.PositionOf(tile.ID)
	if err != nil {
		t.Fatalf("PositionOf after swap error: %v", err)
	}
	if pos != core.C(1, 1) {
		t.Errorf("PositionOf after swap = %v, want (1,1)", pos)
	}

	g.Remove(1, 1)
	if _, err := g.PositionOf(tile.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("PositionOf removed tile error = %v, want ErrNotFound", err)
	}
}

func TestGridSpawnAllocatesUniqueIDs(t *testing.T) {
	g := core.NewGrid(3, 3, 1)
	seen := make(map[core.TileID]bool)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			tile := g.Spawn(x, y, "A")
			if seen[tile.ID] {
				t.Fatalf("duplicate tile ID %d", tile.ID)
			}
			seen[tile.ID] = true
		}
	}
}

func TestGridToWorld(t *testing.T) {
	testCases := []struct {
		name     string
		w, h     int
		cellSize float64
		x, y     int
		wx, wy   float64
	}{
		{"even grid origin", 8, 8, 2, 0, 0, -8, -8},
		{"even grid center", 8, 8, 2, 4, 4, 0, 0},
		{"odd grid uses integer half", 3, 3, 1, 0, 0, -1, -1},
		{"odd grid corner", 3, 5, 1, 2, 4, 1, 2},
		{"non-square", 4, 6, 0.5, 1, 5, -0.5, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := core.NewGrid(tc.w, tc.h, tc.cellSize)
			wx, wy := g.ToWorld(tc.x, tc.y)
			if wx != tc.wx || wy != tc.wy {
				t.Errorf("ToWorld(%d,%d) = (%v,%v), want (%v,%v)", tc.x, tc.y, wx, wy, tc.wx, tc.wy)
			}
		})
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, "AB", "CD")
	clone := g.Clone()

	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	clone.Remove(0, 0)
	if g.Equal(clone) {
		t.Error("mutating clone should not affect original")
	}
	if !g.At(0, 0).Filled {
		t.Error("original slot should still be filled")
	}
}

func TestGridSameKindsIgnoresIdentity(t *testing.T) {
	a := mustGrid(t, "AB", "CD")
	b := mustGrid(t, "AB", "CD")

	// Fresh IDs in b
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			tile, _ := b.TileAt(x, y)
			b.Spawn(x, y, tile.Kind)
		}
	}

	if a.Equal(b) {
		t.Error("grids with different tile IDs should not be Equal")
	}
	if !a.SameKinds(b) {
		t.Error("grids with the same kinds should be SameKinds")
	}
}

func TestCoordDistance(t *testing.T) {
	testCases := []struct {
		a, b      core.Coord
		dx, dy    int
		manhattan int
	}{
		{core.C(0, 0), core.C(1, 0), 1, 0, 1},
		{core.C(2, 5), core.C(0, 1), 2, 4, 6},
		{core.C(3, 3), core.C(3, 3), 0, 0, 0},
	}

	for _, tc := range testCases {
		dx, dy := tc.a.Distance(tc.b)
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%v.Distance(%v) = (%d,%d), want (%d,%d)", tc.a, tc.b, dx, dy, tc.dx, tc.dy)
		}
		if m := tc.a.Manhattan(tc.b); m != tc.manhattan {
			t.Errorf("%v.Manhattan(%v) = %d, want %d", tc.a, tc.b, m, tc.manhattan)
		}
	}
}

func TestSmoothLerpEases(t *testing.T) {
	from := core.Point{X: 0, Y: 0}
	to := core.Point{X: 1, Y: 2}

	testCases := []struct {
		t    float64
		want core.Point
	}{
		{0, core.Point{X: 0, Y: 0}},
		{0.25, core.Point{X: 0.15625, Y: 0.3125}},
		{0.5, core.Point{X: 0.5, Y: 1}},
		{1, core.Point{X: 1, Y: 2}},
		{2, core.Point{X: 1, Y: 2}}, // clamped
	}

	for _, tc := range testCases {
		got := core.SmoothLerp(from, to, tc.t)
		if got != tc.want {
			t.Errorf("SmoothLerp(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}

	if lin := core.Lerp(from, to, 0.25); lin.X != 0.25 {
		t.Errorf("Lerp(t=0.25).X = %v, want 0.25", lin.X)
	}
}
