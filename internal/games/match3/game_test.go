package match3

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// fixedBoard has no starting match; exchanging the two bottom-left tiles
// completes a run of three A's along the bottom row.
const fixedBoard = `
grid:
  width: 4
  height: 4
kinds:
  - id: A
    color: red
  - id: B
    color: green
  - id: C
    color: blue
display:
  ascii: true
  cell_width: 3
  cell_height: 1
layout:
  - "ABCA"
  - "BCAB"
  - "CABC"
  - "ABAA"
`

const randomBoard = `
grid:
  width: 5
  height: 5
kinds:
  - id: A
  - id: B
  - id: C
  - id: D
`

// useConfig points the game at a config file for the duration of the test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "match3.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetRuleOverride("")
	})
}

func runtimeConfig(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
}

// press runs one step with the given actions set.
func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// settle steps until the board waits for input.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if press(g).State.Idle {
			return
		}
	}
	t.Fatal("board did not settle")
}

func newFixedGame(t *testing.T) *Game {
	t.Helper()
	useConfig(t, fixedBoard)
	g := New()
	g.Reset(runtimeConfig(1))
	if err := g.Err(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	settle(t, g)
	return g
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_three"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		if _, ok := g.(registry.Recorder); !ok {
			t.Errorf("%q does not implement registry.Recorder", id)
		}
	}
}

func TestSelectorMoveWraps(t *testing.T) {
	s := NewSelector(4, 3)
	if s.Cursor != core.C(2, 1) {
		t.Fatalf("Cursor = %v, want (2,1)", s.Cursor)
	}

	tests := []struct {
		dx, dy int
		want   core.Coord
	}{
		{1, 0, core.C(3, 1)},
		{1, 0, core.C(0, 1)},
		{-1, 0, core.C(3, 1)},
		{0, 1, core.C(3, 2)},
		{0, 1, core.C(3, 0)},
		{0, -1, core.C(3, 2)},
	}
	for i, tt := range tests {
		s.Move(tt.dx, tt.dy, 4, 3)
		if s.Cursor != tt.want {
			t.Errorf("step %d: Cursor = %v, want %v", i, s.Cursor, tt.want)
		}
	}
}

func TestSelectorConfirm(t *testing.T) {
	grid, err := core.NewGridFromRows(1, "AB.", "CAB")
	if err != nil {
		t.Fatal(err)
	}

	var requests [][2]core.Coord
	request := func(a, b core.Coord) error {
		requests = append(requests, [2]core.Coord{a, b})
		return nil
	}

	s := &Selector{Cursor: core.C(2, 1)}

	// Empty slot: nothing selected
	if err := s.Confirm(grid, request); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("empty slot should not be selectable")
	}

	// Select (0,0), then confirm on (1,0)
	s.Cursor = core.C(0, 0)
	if err := s.Confirm(grid, request); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	id, ok := s.Selected()
	want, _ := grid.TileAt(0, 0)
	if !ok || id != want.ID {
		t.Fatalf("Selected() = %v, %v, want %v", id, ok, want.ID)
	}

	s.Cursor = core.C(1, 0)
	if err := s.Confirm(grid, request); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if len(requests) != 1 || requests[0] != [2]core.Coord{core.C(0, 0), core.C(1, 0)} {
		t.Errorf("requests = %v, want [(0,0) (1,0)]", requests)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared after a request")
	}
}

func TestSelectorFollowsMovedTile(t *testing.T) {
	grid, err := core.NewGridFromRows(1, "AB", "CA")
	if err != nil {
		t.Fatal(err)
	}
	var got [2]core.Coord
	request := func(a, b core.Coord) error {
		got = [2]core.Coord{a, b}
		return nil
	}

	s := &Selector{Cursor: core.C(0, 1)}
	s.Confirm(grid, request) //nolint:errcheck

	// The selected tile moves under the selection
	grid.Swap(core.C(0, 1), core.C(1, 1))

	s.Cursor = core.C(1, 0)
	if err := s.Confirm(grid, request); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if got != [2]core.Coord{core.C(1, 1), core.C(1, 0)} {
		t.Errorf("request = %v, want [(1,1) (1,0)]", got)
	}
}

func TestSelectorDropsStaleSelection(t *testing.T) {
	grid, err := core.NewGridFromRows(1, "AB", "CA")
	if err != nil {
		t.Fatal(err)
	}
	called := false
	request := func(a, b core.Coord) error {
		called = true
		return nil
	}

	s := &Selector{Cursor: core.C(0, 0)}
	s.Confirm(grid, request) //nolint:errcheck
	grid.Remove(0, 0)

	s.Cursor = core.C(1, 0)
	if err := s.Confirm(grid, request); err != nil {
		t.Errorf("stale selection error = %v, want nil", err)
	}
	if called {
		t.Error("stale selection should not request an exchange")
	}
	if _, ok := s.Selected(); ok {
		t.Error("stale selection should be cleared")
	}
}

func TestSelectorPassesRequestError(t *testing.T) {
	grid, err := core.NewGridFromRows(1, "AB", "CA")
	if err != nil {
		t.Fatal(err)
	}
	request := func(a, b core.Coord) error { return core.ErrNotAdjacent }

	s := &Selector{Cursor: core.C(0, 0)}
	s.Confirm(grid, request) //nolint:errcheck
	s.Cursor = core.C(1, 1)
	if err := s.Confirm(grid, request); !errors.Is(err, core.ErrNotAdjacent) {
		t.Errorf("Confirm error = %v, want ErrNotAdjacent", err)
	}
}

func TestGameExchangeResolves(t *testing.T) {
	g := newFixedGame(t)

	// Cursor starts at (2,2); walk to (0,0)
	press(g, platformcore.ActionLeft)
	press(g, platformcore.ActionLeft)
	press(g, platformcore.ActionDown)
	press(g, platformcore.ActionDown)
	if g.Cursor() != core.C(0, 0) {
		t.Fatalf("Cursor = %v, want (0,0)", g.Cursor())
	}

	press(g, platformcore.ActionConfirm)
	if _, ok := g.Selected(); !ok {
		t.Fatal("tile should be selected")
	}
	press(g, platformcore.ActionRight)
	press(g, platformcore.ActionConfirm)

	if _, ok := g.Selected(); ok {
		t.Error("selection should be cleared after the exchange request")
	}
	if g.State().Idle {
		t.Error("board should be busy right after an exchange")
	}

	settle(t, g)

	stats := g.Stats()
	if stats.ExchangesKept != 1 {
		t.Errorf("ExchangesKept = %d, want 1", stats.ExchangesKept)
	}
	if stats.TilesRemoved < 3 {
		t.Errorf("TilesRemoved = %d, want at least 3", stats.TilesRemoved)
	}

	rec := g.Recording()
	if len(rec.Requests) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(rec.Requests))
	}
	if r := rec.Requests[0]; r.A != core.C(0, 0) || r.B != core.C(1, 0) {
		t.Errorf("recorded request = %+v", r)
	}

	replayed, err := core.Replay(rec)
	if err != nil {
		t.Fatalf("Replay error: %v", err)
	}
	if got, want := replayed.Snapshot().BoardText(), g.Snapshot().BoardText(); got != want {
		t.Errorf("replayed board:\n%s\nwant:\n%s", got, want)
	}
}

func TestGameRejectsDistantExchange(t *testing.T) {
	g := newFixedGame(t)

	press(g, platformcore.ActionDown)
	press(g, platformcore.ActionDown)
	press(g, platformcore.ActionConfirm) // select (2,0)
	press(g, platformcore.ActionLeft)
	press(g, platformcore.ActionLeft)
	press(g, platformcore.ActionConfirm) // (0,0) is two slots away

	if g.flash == "" {
		t.Error("rejected exchange should flash a message")
	}
	if !g.State().Idle {
		t.Error("board should stay idle after a rejected exchange")
	}
	if n := g.Stats().ExchangesKept + g.Stats().ExchangesReverted; n != 0 {
		t.Errorf("resolved exchanges = %d, want 0", n)
	}

	for i := 0; i < flashDuration; i++ {
		press(g)
	}
	if g.flash != "" {
		t.Errorf("flash = %q, want it cleared", g.flash)
	}
}

func TestGameBackClearsSelection(t *testing.T) {
	g := newFixedGame(t)

	press(g, platformcore.ActionConfirm)
	if _, ok := g.Selected(); !ok {
		t.Fatal("tile should be selected")
	}
	press(g, platformcore.ActionBack)
	if _, ok := g.Selected(); ok {
		t.Error("Back should clear the selection")
	}
}

func TestExactThreeVariant(t *testing.T) {
	useConfig(t, fixedBoard)
	g := NewExactThree()
	g.Reset(runtimeConfig(1))
	if err := g.Err(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	settle(t, g)

	if rule := g.Recording().Config.Rule; rule != core.RuleExactThree {
		t.Fatalf("Rule = %v, want exact3", rule)
	}

	// Neighbours are refused under the exact-three rule
	press(g, platformcore.ActionConfirm)
	press(g, platformcore.ActionRight)
	press(g, platformcore.ActionConfirm)
	if g.flash == "" {
		t.Error("neighbour exchange should be rejected")
	}
}

func TestRuleOverride(t *testing.T) {
	useConfig(t, fixedBoard)
	SetRuleOverride("exact3")

	g := New()
	g.Reset(runtimeConfig(1))
	if rule := g.Recording().Config.Rule; rule != core.RuleExactThree {
		t.Errorf("Rule = %v, want exact3", rule)
	}

	SetRuleOverride("sideways")
	g.Reset(runtimeConfig(1))
	if !errors.Is(g.Err(), core.ErrInvalidConfig) {
		t.Errorf("Err() = %v, want ErrInvalidConfig", g.Err())
	}
}

func TestGameDeterministic(t *testing.T) {
	useConfig(t, randomBoard)

	a, b := New(), New()
	a.Reset(runtimeConfig(42))
	b.Reset(runtimeConfig(42))
	for i := 0; i < 50; i++ {
		press(a)
		press(b)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if sa.BoardText() != sb.BoardText() {
		t.Errorf("boards differ:\n%s\n---\n%s", sa.BoardText(), sb.BoardText())
	}
	if sa.Tick != sb.Tick || sa.Phase != sb.Phase {
		t.Errorf("snapshots differ: %+v vs %+v", sa, sb)
	}
}

func TestGamePause(t *testing.T) {
	g := newFixedGame(t)
	before := g.Snapshot().Tick

	press(g, platformcore.ActionPause)
	press(g)
	press(g)
	if !g.State().Paused {
		t.Error("game should be paused")
	}
	if got := g.Snapshot().Tick; got != before {
		t.Errorf("engine ticked while paused: %d -> %d", before, got)
	}

	press(g, platformcore.ActionPause)
	if g.State().Paused {
		t.Error("game should be unpaused")
	}
}

func TestGameConfigError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(runtimeConfig(1))
	if g.Err() == nil {
		t.Fatal("expected configuration error")
	}
	if !press(g).State.Paused {
		t.Error("broken board should report paused")
	}
	if s := g.Snapshot(); s.Board != nil {
		t.Errorf("Snapshot() = %+v, want zero", s)
	}

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start board") {
		t.Error("render should explain the configuration error")
	}
}

func TestGameRender(t *testing.T) {
	g := newFixedGame(t)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	text := screen.String()

	if !strings.Contains(text, "Match-3") {
		t.Error("render should contain the title")
	}

	// Board frame is 14x6 centered at x=33; slots start one cell inside it
	if r := screen.Get(35, 6); r != 'A' {
		t.Errorf("bottom-left tile = %q, want 'A'", r)
	}
	if r := screen.Get(35, 3); r != 'A' {
		t.Errorf("top-left tile = %q, want 'A'", r)
	}

	// Cursor brackets slot (2,2)
	if r := screen.Get(40, 4); r != '[' {
		t.Errorf("cursor left = %q, want '['", r)
	}
	if r := screen.Get(41, 4); r != 'A' {
		t.Errorf("cursor tile = %q, want 'A'", r)
	}
	if r := screen.Get(42, 4); r != ']' {
		t.Errorf("cursor right = %q, want ']'", r)
	}
	if c := screen.GetCell(35, 6); c.Color != platformcore.ColorRed {
		t.Errorf("tile color = %v, want red", c.Color)
	}
}

func TestGameTooSmall(t *testing.T) {
	useConfig(t, fixedBoard)
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 30, ScreenH: 5, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	screen := platformcore.NewScreen(30, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("render should report the small window")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("game should resume after resize")
	}
}
