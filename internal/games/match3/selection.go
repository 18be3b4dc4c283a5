package match3

import (
	"errors"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Selector turns cursor movement and confirm presses into exchange requests.
// It remembers the selected tile by ID so the selection follows the tile if
// the board resolves underneath it.
type Selector struct {
	Cursor core.Coord

	selected    core.TileID
	hasSelected bool
}

// NewSelector returns a selector with the cursor in the middle of a w x h board.
func NewSelector(w, h int) *Selector {
	return &Selector{Cursor: core.C(w/2, h/2)}
}

// Move shifts the cursor by (dx, dy), wrapping around the board edges.
// Positive dy moves up.
func (s *Selector) Move(dx, dy, w, h int) {
	s.Cursor.X = platformcore.Wrap(s.Cursor.X+dx, w)
	s.Cursor.Y = platformcore.Wrap(s.Cursor.Y+dy, h)
}

// Selected returns the selected tile, if any.
func (s *Selector) Selected() (core.TileID, bool) {
	return s.selected, s.hasSelected
}

// Clear drops the selection.
func (s *Selector) Clear() {
	s.selected = 0
	s.hasSelected = false
}

// Confirm selects the tile under the cursor, or, with a tile already
// selected, requests an exchange between that tile and the cursor slot.
// The selection is cleared after every request. A selected tile that has
// left the board is dropped without a request. Confirming on the selected
// tile itself deselects it.
func (s *Selector) Confirm(g *core.Grid, request func(a, b core.Coord) error) error {
	if !s.hasSelected {
		t, ok := g.TileAt(s.Cursor.X, s.Cursor.Y)
		if !ok {
			return nil
		}
		s.selected = t.ID
		s.hasSelected = true
		return nil
	}

	id := s.selected
	s.Clear()

	from, err := g.PositionOf(id)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if from == s.Cursor {
		return nil
	}
	return request(from, s.Cursor)
}
