package core

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for debug output. Nil keeps the discard logger.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithListener registers a callback that receives every event as it is emitted.
func WithListener(fn func(Event)) Option {
	return func(lp *Loop) {
		lp.listener = fn
	}
}

// WithRand replaces the seeded random source. Loops built with it cannot be replayed.
func WithRand(src IntNSource) Option {
	return func(lp *Loop) {
		lp.rng = src
		lp.replayable = false
	}
}

// WithGrid starts the loop from an existing grid instead of the configured
// layout or a random fill. The grid's dimensions replace the configured ones.
// Loops built with it cannot be replayed.
func WithGrid(g *Grid) Option {
	return func(lp *Loop) {
		lp.grid = g
		lp.replayable = false
	}
}

// Loop sequences detection, removal, gravity and refill once per tick and
// hands control to the input collaborator when the board is stable.
// A Loop is not safe for concurrent use.
type Loop struct {
	cfg Config

	grid     *Grid
	detector *MatchDetector
	swap     *SwapCoordinator
	gravity  *GravityResolver
	repop    *Repopulator

	phase   Phase
	tick    uint64
	cascade int
	stats   Stats

	// Replay journal
	requests   []RecordedExchange
	step       float64
	stepVaried bool
	replayable bool

	rng      IntNSource
	logger   *log.Logger
	listener func(Event)
	events   []Event
}

// NewLoop validates cfg and builds the starting board: the configured layout
// if any, otherwise a random fill from cfg.Seed.
func NewLoop(cfg Config, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loop{
		cfg:        cfg,
		phase:      PhaseAwaitingFull,
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		logger:     log.New(io.Discard),
		replayable: true,
	}
	for _, opt := range opts {
		opt(l)
	}

	fill := l.grid == nil
	if l.grid == nil && len(cfg.Layout) > 0 {
		g, err := NewGridFromRows(cfg.CellSize, cfg.Layout...)
		if err != nil {
			return nil, err
		}
		l.grid = g
		fill = false
	}
	if l.grid == nil {
		l.grid = NewGrid(cfg.Width, cfg.Height, cfg.CellSize)
	}
	l.cfg.Width, l.cfg.Height = l.grid.W, l.grid.H

	l.detector = NewMatchDetector(l.grid)
	l.swap = NewSwapCoordinator(l.grid, l.detector, cfg.Rule)
	l.gravity = NewGravityResolver(l.grid)
	l.repop = NewRepopulator(l.grid, KindSet(cfg.Kinds), l.rng)

	if fill {
		l.repop.FillAll()
	}

	l.logger.Debug("board created",
		"width", l.grid.W,
		"height", l.grid.H,
		"kinds", len(cfg.Kinds),
		"rule", cfg.Rule,
		"seed", cfg.Seed,
	)
	return l, nil
}

// Config returns the loop configuration.
func (l *Loop) Config() Config {
	return l.cfg
}

// Grid returns the authoritative grid. Callers must only read it.
func (l *Loop) Grid() *Grid {
	return l.grid
}

// Detector returns the match detector bound to the grid.
func (l *Loop) Detector() *MatchDetector {
	return l.detector
}

// Phase returns the current phase.
func (l *Loop) Phase() Phase {
	return l.phase
}

// TickCount returns the number of ticks run so far.
func (l *Loop) TickCount() uint64 {
	return l.tick
}

// Stats returns a copy of the session counters.
func (l *Loop) Stats() Stats {
	s := l.stats
	s.Ticks = l.tick
	return s
}

// Ready reports whether an exchange request would be accepted now.
func (l *Loop) Ready() bool {
	return l.phase == PhaseAwaitingInput && !l.swap.Busy()
}

// Pending returns the exchange in flight, if any.
func (l *Loop) Pending() (PendingExchange, bool) {
	return l.swap.Pending()
}

// Motions returns the open gravity motion orders.
func (l *Loop) Motions() []MotionOrder {
	return l.gravity.Orders()
}

// RequestExchange asks to swap the tiles at a and b. It fails with
// ErrNotReady unless the loop is awaiting input with no swap in transit,
// and with ErrNotAdjacent or ErrNotFound when the pair is not eligible.
// Out-of-range coordinates panic with OutOfRangeError.
func (l *Loop) RequestExchange(a, b Coord) error {
	l.stats.ExchangesRequested++

	if !l.Ready() {
		l.stats.ExchangesRejected++
		return ErrNotReady
	}
	if err := l.swap.RequestExchange(a, b); err != nil {
		l.stats.ExchangesRejected++
		l.logger.Debug("exchange rejected", "a", a, "b", b, "err", err)
		return err
	}

	l.requests = append(l.requests, RecordedExchange{Tick: l.tick, A: a, B: b})
	ex, _ := l.swap.Pending()
	l.emit(ExchangeStartedEvent{Exchange: ex})
	l.logger.Debug("exchange requested", "a", a, "b", b, "tick", l.tick)
	return nil
}

// Tick advances the simulation by dt units of time. Animation progress grows
// by AnimationSpeed*dt. While a swap or a gravity motion is in flight only
// the animation advances; otherwise the loop takes one resolution step:
// gravity (or refill when gravity is stuck) on a non-full grid, match removal
// on a full grid with a match, or a transition to awaiting input.
func (l *Loop) Tick(dt float64) TickResult {
	l.tick++
	l.trackStep(dt)

	res := TickResult{Tick: l.tick}
	delta := l.cfg.AnimationSpeed * dt

	if l.swap.Busy() {
		res.Swap = l.swap.Advance(delta)
		l.handleSwapStep(res.Swap)
	}
	if l.gravity.InFlight() {
		l.gravity.Advance(delta)
	}

	if !l.swap.Busy() && !l.gravity.InFlight() {
		l.resolve()
	}

	res.Phase = l.phase
	res.Motions = l.gravity.Orders()
	l.flushTo(&res)
	return res
}

// RunUntilSettled ticks with dt until the loop awaits input with nothing in
// flight, or until maxTicks ticks have run. It returns the number of ticks
// run and whether the board settled.
func (l *Loop) RunUntilSettled(dt float64, maxTicks int) (int, bool) {
	for i := 0; i < maxTicks; i++ {
		if l.settled() {
			return i, true
		}
		l.Tick(dt)
	}
	return maxTicks, l.settled()
}

func (l *Loop) settled() bool {
	return l.phase == PhaseAwaitingInput && !l.swap.Busy() && !l.gravity.InFlight()
}

func (l *Loop) resolve() {
	if !l.grid.IsFull() {
		l.setPhase(PhaseAwaitingFull)

		moved := l.gravity.Pass()
		for _, o := range moved {
			l.emit(TileMovedEvent{Order: o})
		}
		if len(moved) > 0 {
			return
		}

		for _, p := range l.repop.FillTopRow() {
			l.stats.TilesSpawned++
			l.emit(TileSpawnedEvent{Coord: p.Coord, Tile: p.Tile})
		}
		return
	}

	if l.detector.AnyMatchExists() {
		l.setPhase(PhaseResolving)

		matched := l.detector.FindAllMatchedCoordinates().Sorted()
		for _, c := range matched {
			t, _ := l.grid.Remove(c.X, c.Y)
			l.emit(TileRemovedEvent{Coord: c, Tile: t})
		}
		l.stats.TilesRemoved += len(matched)
		l.cascade++
		l.logger.Debug("tiles removed", "count", len(matched), "batch", l.cascade)
		return
	}

	if l.cascade > 0 {
		l.stats.Cascades++
		if l.cascade > l.stats.LongestCascade {
			l.stats.LongestCascade = l.cascade
		}
		l.logger.Debug("cascade settled", "batches", l.cascade)
		l.cascade = 0
	}
	l.setPhase(PhaseAwaitingInput)
}

func (l *Loop) handleSwapStep(step SwapStep) {
	switch step.Outcome {
	case ExchangeReverting:
		ex, _ := l.swap.Pending()
		l.emit(ExchangeRevertingEvent{Exchange: ex})
		l.logger.Debug("exchange reverting", "a", step.Exchange.A, "b", step.Exchange.B)
	case ExchangeKept:
		l.stats.ExchangesKept++
		l.emit(ExchangeSettledEvent{A: step.Exchange.A, B: step.Exchange.B, Kept: true})
		l.logger.Debug("exchange committed", "a", step.Exchange.A, "b", step.Exchange.B)
	case ExchangeRestored:
		l.stats.ExchangesReverted++
		// The undo runs B to A; report the pair as originally requested.
		l.emit(ExchangeSettledEvent{A: step.Exchange.B, B: step.Exchange.A, Kept: false})
		l.logger.Debug("exchange reverted", "a", step.Exchange.B, "b", step.Exchange.A)
	}
}

func (l *Loop) setPhase(p Phase) {
	if l.phase == p {
		return
	}
	l.emit(PhaseChangedEvent{From: l.phase, To: p})
	l.phase = p
}

func (l *Loop) emit(e Event) {
	l.events = append(l.events, e)
	if l.listener != nil {
		l.listener(e)
	}
}

// flushTo moves buffered events into res. Events emitted by RequestExchange
// between ticks are delivered with the next tick.
func (l *Loop) flushTo(res *TickResult) {
	if len(l.events) > 0 {
		res.Events = append(res.Events, l.events...)
	}
	l.events = l.events[:0]
}

func (l *Loop) trackStep(dt float64) {
	if l.tick == 1 {
		l.step = dt
		return
	}
	if dt != l.step {
		l.stepVaried = true
	}
}
