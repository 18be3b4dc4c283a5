package core

import (
	"errors"
	"fmt"
)

// ErrNotReplayable is returned when a recording cannot reproduce its session.
var ErrNotReplayable = errors.New("match3: recording is not replayable")

// RecordedExchange is an accepted exchange request and the tick count at
// which it was made.
type RecordedExchange struct {
	Tick uint64
	A, B Coord
}

// Recording is the journal of a session: enough to rebuild it exactly.
type Recording struct {
	Config     Config
	Ticks      uint64
	Step       float64 // dt passed to every Tick
	Requests   []RecordedExchange
	Replayable bool // False for custom grids, custom RNGs, or varying dt
}

// Recording returns the session journal so far.
func (l *Loop) Recording() Recording {
	reqs := make([]RecordedExchange, len(l.requests))
	copy(reqs, l.requests)

	step := l.step
	if l.tick == 0 {
		step = 1
	}
	return Recording{
		Config:     l.cfg,
		Ticks:      l.tick,
		Step:       step,
		Requests:   reqs,
		Replayable: l.replayable && !l.stepVaried,
	}
}

// Replay rebuilds a loop from rec and runs it to rec.Ticks, issuing every
// recorded request at its original tick count. The result holds the same
// board as the recorded session at that point.
func Replay(rec Recording, opts ...Option) (*Loop, error) {
	if !rec.Replayable {
		return nil, ErrNotReplayable
	}

	l, err := NewLoop(rec.Config, opts...)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	next := 0
	issue := func() error {
		for next < len(rec.Requests) && rec.Requests[next].Tick == l.tick {
			r := rec.Requests[next]
			if err := l.RequestExchange(r.A, r.B); err != nil {
				return fmt.Errorf("replay: request %d at tick %d: %w", next, r.Tick, err)
			}
			next++
		}
		return nil
	}

	for l.tick < rec.Ticks {
		if err := issue(); err != nil {
			return nil, err
		}
		l.Tick(rec.Step)
	}
	if err := issue(); err != nil {
		return nil, err
	}
	if next != len(rec.Requests) {
		return nil, fmt.Errorf("replay: %d requests past tick %d", len(rec.Requests)-next, rec.Ticks)
	}
	return l, nil
}
