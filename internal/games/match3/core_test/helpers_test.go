package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// mustGrid builds a grid from rows listed top row first.
func mustGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.NewGridFromRows(1, rows...)
	if err != nil {
		t.Fatalf("NewGridFromRows(%q) error: %v", rows, err)
	}
	return g
}

// seqSource returns a fixed sequence of values, wrapping around.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// expectOutOfRange fails the test unless fn panics with core.OutOfRangeError.
func expectOutOfRange(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Error("expected panic, got none")
			return
		}
		err, ok := r.(error)
		if !ok {
			t.Errorf("panic value = %v, want OutOfRangeError", r)
			return
		}
		var oor core.OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("panic value = %v, want OutOfRangeError", err)
		}
	}()
	fn()
}

// compacted reports whether no column has an occupied slot above an empty one.
func compacted(g *core.Grid) bool {
	for x := 0; x < g.W; x++ {
		seenEmpty := false
		for y := 0; y < g.H; y++ {
			filled := g.At(x, y).Filled
			if !filled {
				seenEmpty = true
			} else if seenEmpty {
				return false
			}
		}
	}
	return true
}

func testConfig(rows ...string) core.Config {
	cfg := core.DefaultConfig()
	cfg.Kinds = []core.Kind{"A", "B", "C"}
	cfg.Layout = rows
	cfg.Height = len(rows)
	cfg.Width = len([]rune(rows[0]))
	cfg.Seed = 7
	return cfg
}
