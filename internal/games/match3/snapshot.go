package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// Snapshot returns the engine snapshot for determinism checks and storage.
// A board that failed to build yields a zero snapshot.
func (g *Game) Snapshot() core.Snapshot {
	if g.loop == nil {
		return core.Snapshot{}
	}
	return g.loop.Snapshot()
}

// Recording returns the replay journal of the current board.
func (g *Game) Recording() core.Recording {
	if g.loop == nil {
		return core.Recording{}
	}
	return g.loop.Recording()
}

// Stats returns the session counters.
func (g *Game) Stats() core.Stats {
	if g.loop == nil {
		return core.Stats{}
	}
	return g.loop.Stats()
}
