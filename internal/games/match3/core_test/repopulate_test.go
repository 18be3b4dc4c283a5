package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFillTopRow(t *testing.T) {
	g := mustGrid(t,
		"A..",
		"...",
		"B.C",
	)
	kinds := core.KindSet{"X", "Y", "Z"}
	r := core.NewRepopulator(g, kinds, &seqSource{vals: []int{1, 2}})

	placed := r.FillTopRow()
	if len(placed) != 2 {
		t.Fatalf("FillTopRow() placed %d tiles, want 2", len(placed))
	}

	wantKinds := []core.Kind{"Y", "Z"}
	wantCoords := []core.Coord{core.C(1, 2), core.C(2, 2)}
	for i, p := range placed {
		if p.Coord != wantCoords[i] {
			t.Errorf("placed[%d].Coord = %v, want %v", i, p.Coord, wantCoords[i])
		}
		if p.Tile.Kind != wantKinds[i] {
			t.Errorf("placed[%d].Tile.Kind = %q, want %q", i, p.Tile.Kind, wantKinds[i])
		}
		tile, ok := g.TileAt(p.Coord.X, p.Coord.Y)
		if !ok || tile != p.Tile {
			t.Errorf("grid at %v = %+v, want %+v", p.Coord, tile, p.Tile)
		}
	}

	// Lower rows are left to gravity
	if g.At(1, 1).Filled || g.At(1, 0).Filled {
		t.Error("FillTopRow must only touch the top row")
	}

	if again := r.FillTopRow(); len(again) != 0 {
		t.Errorf("FillTopRow() on a full top row placed %d tiles, want 0", len(again))
	}
}

func TestFillAll(t *testing.T) {
	g := mustGrid(t,
		"A.B",
		"...",
		"C..",
	)
	empty := g.EmptyCount()
	kinds := core.KindSet{"A", "B", "C"}
	r := core.NewRepopulator(g, kinds, &seqSource{vals: []int{0, 1, 2, 3, 4}})

	placed := r.FillAll()
	if len(placed) != empty {
		t.Errorf("FillAll() placed %d tiles, want %d", len(placed), empty)
	}
	if !g.IsFull() {
		t.Error("grid should be full after FillAll")
	}

	allowed := map[core.Kind]bool{"A": true, "B": true, "C": true}
	for _, p := range placed {
		if !allowed[p.Tile.Kind] {
			t.Errorf("spawned kind %q is not in the configured set", p.Tile.Kind)
		}
	}
}

func TestFillTopRowSingleKind(t *testing.T) {
	g := core.NewGrid(4, 3, 1)
	r := core.NewRepopulator(g, core.KindSet{"only"}, &seqSource{vals: []int{7}})

	placed := r.FillTopRow()
	if len(placed) != 4 {
		t.Fatalf("FillTopRow() placed %d tiles, want 4", len(placed))
	}
	for _, p := range placed {
		if p.Tile.Kind != "only" {
			t.Errorf("kind = %q, want only", p.Tile.Kind)
		}
	}
}
