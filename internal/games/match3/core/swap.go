package core

import "fmt"

// SelectionRule decides which pairs of slots may be exchanged.
type SelectionRule uint8

const (
	// RuleAdjacent allows exchanges between slots at Manhattan distance 1.
	RuleAdjacent SelectionRule = iota
	// RuleExactThree allows exchanges between slots exactly three apart along
	// a row, a column, or a diagonal.
	RuleExactThree
)

// ParseSelectionRule converts a config name into a rule.
func ParseSelectionRule(name string) (SelectionRule, error) {
	switch name {
	case "", "adjacent":
		return RuleAdjacent, nil
	case "exact3", "three":
		return RuleExactThree, nil
	default:
		return RuleAdjacent, fmt.Errorf("%w: unknown selection rule %q", ErrInvalidConfig, name)
	}
}

// String returns the config name of the rule.
func (r SelectionRule) String() string {
	switch r {
	case RuleAdjacent:
		return "adjacent"
	case RuleExactThree:
		return "exact3"
	default:
		return "unknown"
	}
}

// Allows reports whether a and b may be exchanged under this rule.
func (r SelectionRule) Allows(a, b Coord) bool {
	dx, dy := a.Distance(b)
	switch r {
	case RuleAdjacent:
		return dx+dy == 1
	case RuleExactThree:
		return (dx == 3 && dy == 0) || (dx == 0 && dy == 3) || (dx == 3 && dy == 3)
	default:
		return false
	}
}

// SwapPhase is the state of the swap coordinator.
type SwapPhase uint8

const (
	SwapIdle SwapPhase = iota
	SwapInTransit
	SwapSettled
)

// String returns the string representation of a swap phase.
func (p SwapPhase) String() string {
	switch p {
	case SwapIdle:
		return "idle"
	case SwapInTransit:
		return "in-transit"
	case SwapSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// PendingExchange is an exchange in flight. TileA travels from A to B and
// TileB travels from B to A. The grid is untouched until Progress reaches 1.
type PendingExchange struct {
	A, B       Coord
	TileA      Tile
	TileB      Tile
	Progress   float64 // 0..1
	Reversible bool    // False for the undo of a failed exchange
}

// ExchangeOutcome reports what an Advance call did to the pending exchange.
type ExchangeOutcome uint8

const (
	ExchangeMoving    ExchangeOutcome = iota // Still animating
	ExchangeReverting                        // Committed without a match; undo issued
	ExchangeKept                             // Committed and produced a match
	ExchangeRestored                         // Undo committed; original positions back
)

// String returns the string representation of an outcome.
func (o ExchangeOutcome) String() string {
	switch o {
	case ExchangeMoving:
		return "moving"
	case ExchangeReverting:
		return "reverting"
	case ExchangeKept:
		return "kept"
	case ExchangeRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// SwapStep is the renderer-facing result of one Advance call.
type SwapStep struct {
	Active   bool            // False when no exchange was pending
	Exchange PendingExchange // Copy of the exchange after this step
	PosA     Point           // World position of TileA
	PosB     Point           // World position of TileB
	Outcome  ExchangeOutcome
}

// SwapCoordinator validates and animates a tentative two-tile exchange and
// rolls it back when it does not produce a match.
type SwapCoordinator struct {
	grid     *Grid
	detector *MatchDetector
	rule     SelectionRule
	phase    SwapPhase
	pending  *PendingExchange
}

// NewSwapCoordinator creates a coordinator over the grid using the given rule.
func NewSwapCoordinator(g *Grid, d *MatchDetector, rule SelectionRule) *SwapCoordinator {
	return &SwapCoordinator{
		grid:     g,
		detector: d,
		rule:     rule,
		phase:    SwapIdle,
	}
}

// Rule returns the active selection rule.
func (s *SwapCoordinator) Rule() SelectionRule {
	return s.rule
}

// Phase returns the coordinator state.
func (s *SwapCoordinator) Phase() SwapPhase {
	return s.phase
}

// Busy reports whether an exchange or its undo is in transit.
func (s *SwapCoordinator) Busy() bool {
	return s.phase == SwapInTransit
}

// Pending returns a copy of the exchange in flight, if any.
func (s *SwapCoordinator) Pending() (PendingExchange, bool) {
	if s.pending == nil {
		return PendingExchange{}, false
	}
	return *s.pending, true
}

// RequestExchange starts a reversible exchange between a and b.
// The grid is not modified. Out-of-range coordinates panic with OutOfRangeError.
func (s *SwapCoordinator) RequestExchange(a, b Coord) error {
	if s.Busy() {
		return ErrExchangeInProgress
	}

	cellA := s.grid.At(a.X, a.Y)
	cellB := s.grid.At(b.X, b.Y)

	if !s.rule.Allows(a, b) {
		return fmt.Errorf("%w: %s and %s under %s rule", ErrNotAdjacent, a, b, s.rule)
	}
	if !cellA.Filled {
		return fmt.Errorf("%w: slot %s is empty", ErrNotFound, a)
	}
	if !cellB.Filled {
		return fmt.Errorf("%w: slot %s is empty", ErrNotFound, b)
	}

	s.pending = &PendingExchange{
		A:          a,
		B:          b,
		TileA:      cellA.Tile,
		TileB:      cellB.Tile,
		Reversible: true,
	}
	s.phase = SwapInTransit
	return nil
}

// Advance moves the pending exchange forward by delta, clamped at 1.
// At 1 the slots are exchanged in the grid. If that produced no match the
// exchange is immediately replaced by its non-reversible undo; otherwise the
// coordinator settles.
func (s *SwapCoordinator) Advance(delta float64) SwapStep {
	if s.pending == nil {
		return SwapStep{}
	}
	if delta < 0 {
		delta = 0
	}

	p := s.pending
	p.Progress = clamp01(p.Progress + delta)

	if p.Progress < 1 {
		return s.step(*p, ExchangeMoving)
	}

	s.grid.Swap(p.A, p.B)
	done := *p

	if p.Reversible && !s.detector.AnyMatchExists() {
		s.pending = &PendingExchange{
			A:          p.B,
			B:          p.A,
			TileA:      p.TileA,
			TileB:      p.TileB,
			Reversible: false,
		}
		return s.step(done, ExchangeReverting)
	}

	s.pending = nil
	s.phase = SwapSettled
	if done.Reversible {
		return s.step(done, ExchangeKept)
	}
	return s.step(done, ExchangeRestored)
}

func (s *SwapCoordinator) step(ex PendingExchange, outcome ExchangeOutcome) SwapStep {
	from, to := s.grid.WorldOf(ex.A), s.grid.WorldOf(ex.B)
	return SwapStep{
		Active:   true,
		Exchange: ex,
		PosA:     SmoothLerp(from, to, ex.Progress),
		PosB:     SmoothLerp(to, from, ex.Progress),
		Outcome:  outcome,
	}
}
