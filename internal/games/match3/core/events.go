package core

// Phase is the state of the simulation loop.
type Phase uint8

const (
	// PhaseAwaitingFull: the grid has empty slots; gravity and refill run.
	PhaseAwaitingFull Phase = iota
	// PhaseResolving: the grid is full and matched tiles are being removed.
	PhaseResolving
	// PhaseAwaitingInput: the grid is full and stable; exchanges are accepted.
	PhaseAwaitingInput
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFull:
		return "awaiting-full"
	case PhaseResolving:
		return "resolving"
	case PhaseAwaitingInput:
		return "awaiting-input"
	default:
		return "unknown"
	}
}

// Event is emitted by the loop for a renderer to mirror grid changes.
type Event interface {
	isEvent()
}

// TileRemovedEvent: a matched tile was destroyed.
type TileRemovedEvent struct {
	Coord Coord
	Tile  Tile
}

// TileSpawnedEvent: a new tile entered the grid.
type TileSpawnedEvent struct {
	Coord Coord
	Tile  Tile
}

// TileMovedEvent: gravity issued a motion order.
type TileMovedEvent struct {
	Order MotionOrder
}

// ExchangeStartedEvent: an exchange request was accepted.
type ExchangeStartedEvent struct {
	Exchange PendingExchange
}

// ExchangeRevertingEvent: an exchange produced no match and its undo started.
type ExchangeRevertingEvent struct {
	Exchange PendingExchange
}

// ExchangeSettledEvent: an exchange finished. Kept is false when it was undone.
type ExchangeSettledEvent struct {
	A, B Coord
	Kept bool
}

// PhaseChangedEvent: the loop moved between phases.
type PhaseChangedEvent struct {
	From, To Phase
}

func (TileRemovedEvent) isEvent()       {}
func (TileSpawnedEvent) isEvent()       {}
func (TileMovedEvent) isEvent()         {}
func (ExchangeStartedEvent) isEvent()   {}
func (ExchangeRevertingEvent) isEvent() {}
func (ExchangeSettledEvent) isEvent()   {}
func (PhaseChangedEvent) isEvent()      {}

// TickResult is returned by Loop.Tick.
type TickResult struct {
	Tick    uint64
	Phase   Phase
	Events  []Event
	Swap    SwapStep      // Swap animation state; Active is false when idle
	Motions []MotionOrder // Open gravity motions after this tick
}

// Stats are counters describing a session. They are telemetry, not a score.
type Stats struct {
	Ticks              uint64
	ExchangesRequested int
	ExchangesRejected  int
	ExchangesKept      int
	ExchangesReverted  int
	TilesRemoved       int
	TilesSpawned       int // Refills only; the starting board is not counted
	Cascades           int // Sequences of at least one removal between two stable boards
	LongestCascade     int // Most removal batches in a single sequence
}
