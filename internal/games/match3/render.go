package match3

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	frameColor    = platformcore.ColorGray
	cursorColor   = platformcore.ColorBrightWhite
	selectedColor = platformcore.ColorBrightYellow
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	board := platformcore.NewRect((g.screenW-boardW)/2, g.hudHeight, boardW, boardH)

	g.renderHUD(dst, board)
	dst.DrawBoxColored(board, frameColor)
	g.renderTiles(dst, board.Inset(1))
	g.renderCursor(dst, board.Inset(1))
	g.renderFooter(dst, board.Bottom())

	if g.paused {
		dst.DrawTextCentered(board.Y+boardH/2, " PAUSED ")
	}
}

// renderError shows why the board could not be built.
func (g *Game) renderError(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Cannot start board")
	dst.DrawTextCentered(y, g.err.Error())
	dst.DrawTextCentered(y+2, "Press Q to quit")
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and session counters above the board.
func (g *Game) renderHUD(dst *platformcore.Screen, board platformcore.Rect) {
	stats := g.loop.Stats()

	dst.DrawTextCentered(0, g.Title())

	status := fmt.Sprintf("Removed: %d  Best cascade: %d", stats.TilesRemoved, stats.LongestCascade)
	dst.DrawText(board.X, 1, status)

	phase := g.loop.Phase().String()
	dst.DrawText(board.Right()-runewidth.StringWidth(phase), 1, phase)
}

// renderFooter draws the flash message or the key hints below the board.
func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	if g.flash != "" {
		dst.DrawTextColored((g.screenW-runewidth.StringWidth(g.flash))/2, y, g.flash, platformcore.ColorBrightRed)
		return
	}
	dst.DrawTextCentered(y, "Arrows move  Enter select/swap  B deselect  R new board  Q quit")
}

// renderTiles draws resting tiles in their slots and moving tiles at their
// interpolated positions.
func (g *Game) renderTiles(dst *platformcore.Screen, area platformcore.Rect) {
	grid := g.loop.Grid()
	moving := make(map[core.TileID]core.Point)

	if ex, ok := g.loop.Pending(); ok {
		from, to := grid.WorldOf(ex.A), grid.WorldOf(ex.B)
		moving[ex.TileA.ID] = core.SmoothLerp(from, to, ex.Progress)
		moving[ex.TileB.ID] = core.SmoothLerp(to, from, ex.Progress)
	}
	for _, m := range g.loop.Motions() {
		moving[m.Tile.ID] = m.Position(grid)
	}

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			t, ok := grid.TileAt(x, y)
			if !ok {
				continue
			}
			if _, isMoving := moving[t.ID]; isMoving {
				continue
			}
			g.drawTile(dst, area, t, float64(x), float64(y))
		}
	}

	// Moving tiles are drawn last so they pass over resting ones
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			t, ok := grid.TileAt(x, y)
			if !ok {
				continue
			}
			if p, isMoving := moving[t.ID]; isMoving {
				gx, gy := g.worldToSlot(p)
				g.drawTile(dst, area, t, gx, gy)
			}
		}
	}
}

// worldToSlot inverts Grid.ToWorld into fractional slot coordinates.
func (g *Game) worldToSlot(p core.Point) (float64, float64) {
	grid := g.loop.Grid()
	return p.X/grid.CellSize + float64(grid.W/2), p.Y/grid.CellSize + float64(grid.H/2)
}

// cellOrigin returns the top-left screen cell of a (fractional) slot.
// Slot y=0 is the bottom row.
func (g *Game) cellOrigin(area platformcore.Rect, x, y float64) (int, int) {
	grid := g.loop.Grid()
	col := area.X + int(math.Round(x*float64(g.cellW)))
	row := area.Y + int(math.Round((float64(grid.H-1)-y)*float64(g.cellH)))
	return col, row
}

// drawTile draws a tile glyph centered in its cell.
func (g *Game) drawTile(dst *platformcore.Screen, area platformcore.Rect, t core.Tile, x, y float64) {
	col, row := g.cellOrigin(area, x, y)
	style, ok := g.styles[t.Kind]
	if !ok {
		style.Glyph = string(t.Kind)
	}
	w := runewidth.StringWidth(style.Glyph)
	col += platformcore.Max(0, (g.cellW-w)/2)
	row += (g.cellH - 1) / 2
	if !area.Contains(col, row) {
		return
	}
	dst.DrawTextColored(col, row, style.Glyph, style.Color)
}

// renderCursor brackets the selected tile and the cursor slot.
func (g *Game) renderCursor(dst *platformcore.Screen, area platformcore.Rect) {
	grid := g.loop.Grid()

	if id, ok := g.sel.Selected(); ok {
		if at, err := grid.PositionOf(id); err == nil {
			g.drawBrackets(dst, area, at, '<', '>', selectedColor)
		}
	}
	g.drawBrackets(dst, area, g.sel.Cursor, '[', ']', cursorColor)
}

func (g *Game) drawBrackets(dst *platformcore.Screen, area platformcore.Rect, c core.Coord, left, right rune, color platformcore.Color) {
	col, row := g.cellOrigin(area, float64(c.X), float64(c.Y))
	row += (g.cellH - 1) / 2
	dst.SetColored(col, row, left, color)
	dst.SetColored(col+g.cellW-1, row, right, color)
}
