package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestGravitySingleGap(t *testing.T) {
	// Column bottom to top: [A, empty, B]
	g := mustGrid(t,
		"B",
		".",
		"A",
	)
	r := core.NewGravityResolver(g)

	if !r.StepColumnsDown() {
		t.Fatal("StepColumnsDown() = false, want true")
	}

	want := []string{".", "B", "A"}
	got := g.Rows()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	orders := r.Orders()
	if len(orders) != 1 {
		t.Fatalf("len(Orders()) = %d, want 1", len(orders))
	}
	if orders[0].From != core.C(0, 2) || orders[0].To != core.C(0, 1) {
		t.Errorf("order = %v->%v, want (0,2)->(0,1)", orders[0].From, orders[0].To)
	}
	if orders[0].Tile.Kind != "B" {
		t.Errorf("order tile kind = %q, want B", orders[0].Tile.Kind)
	}

	if r.StepColumnsDown() {
		t.Error("second StepColumnsDown() = true, want false")
	}
}

func TestGravityShiftsWholeStack(t *testing.T) {
	// Column bottom to top: [empty, A, B, C]
	g := mustGrid(t,
		"C",
		"B",
		"A",
		".",
	)
	r := core.NewGravityResolver(g)

	moved := r.Pass()
	if len(moved) != 3 {
		t.Fatalf("Pass() issued %d orders, want 3", len(moved))
	}
	if g.String() != ".\nC\nB\nA" {
		t.Errorf("grid after pass:\n%s", g)
	}
	for _, o := range moved {
		if o.To.Y != o.From.Y-1 {
			t.Errorf("order %v->%v moves more than one slot", o.From, o.To)
		}
	}
}

func TestGravityRepeatsUntilCompacted(t *testing.T) {
	g := mustGrid(t,
		"AB.C",
		"...A",
		"B.C.",
		"..A.",
	)
	tiles := 16 - g.EmptyCount()
	r := core.NewGravityResolver(g)

	passes := 0
	for r.StepColumnsDown() {
		passes++
		if passes > g.H {
			t.Fatal("gravity did not converge")
		}
	}

	if !compacted(g) {
		t.Errorf("grid not compacted:\n%s", g)
	}
	if got := 16 - g.EmptyCount(); got != tiles {
		t.Errorf("tile count = %d, want %d", got, tiles)
	}
	if r.StepColumnsDown() {
		t.Error("StepColumnsDown() on a stable grid = true, want false")
	}

	want := "....\n....\nA.CC\nBBAA"
	if g.String() != want {
		t.Errorf("grid:\n%s\nwant:\n%s", g, want)
	}
}

func TestGravityAdvanceDropsFinishedOrders(t *testing.T) {
	g := mustGrid(t, "A", ".", ".")
	r := core.NewGravityResolver(g)
	r.Pass()

	if !r.InFlight() {
		t.Fatal("expected orders in flight")
	}

	r.Advance(0.5)
	orders := r.Orders()
	if len(orders) != 1 || orders[0].Progress != 0.5 {
		t.Fatalf("Orders() = %+v, want one order at 0.5", orders)
	}

	// Linear interpolation between world positions y=1 and y=0
	pos := orders[0].Position(g)
	if pos.Y != 0.5 {
		t.Errorf("Position().Y = %v, want 0.5", pos.Y)
	}

	r.Advance(0.5)
	if r.InFlight() {
		t.Error("orders should be finished")
	}
	if r.Orders() != nil {
		t.Error("Orders() should be nil when nothing is in flight")
	}
}
