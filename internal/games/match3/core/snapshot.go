package core

import "strings"

// Snapshot is a point-in-time copy of the loop state.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Board    [][]Kind // Indexed [y][x], y=0 bottom; empty slots are ""
	Exchange *PendingExchange
	Motions  []MotionOrder
	Stats    Stats
}

// Snapshot captures the current state. The returned value shares nothing
// with the loop.
func (l *Loop) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    l.tick,
		Phase:   l.phase,
		Board:   l.grid.Kinds(),
		Motions: l.gravity.Orders(),
		Stats:   l.Stats(),
	}
	if ex, ok := l.swap.Pending(); ok {
		s.Exchange = &ex
	}
	return s
}

// BoardText formats the board top row first, one line per row, kinds
// separated by spaces and empty slots shown as '.'.
func (s Snapshot) BoardText() string {
	return FormatBoard(s.Board)
}

// FormatBoard formats a [y][x] kind matrix the way Snapshot.BoardText does.
func FormatBoard(board [][]Kind) string {
	lines := make([]string, 0, len(board))
	for y := len(board) - 1; y >= 0; y-- {
		cells := make([]string, len(board[y]))
		for x, k := range board[y] {
			if k == "" {
				cells[x] = "."
				continue
			}
			cells[x] = string(k)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}
