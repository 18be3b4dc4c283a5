// Package match3 provides the match-3 board game for the arcade.
package match3

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Variant identifies a registered board variant.
type Variant string

const (
	VariantAdjacent   Variant = "match3"
	VariantExactThree Variant = "match3_three"
)

// flashDuration is how many ticks a rejected-exchange message stays in the HUD.
const flashDuration = 60

// Game implements the match-3 board on top of the rules engine.
type Game struct {
	variant Variant

	styles map[core.Kind]config.TileStyle
	loop   *core.Loop
	sel    *Selector

	// Screen dimensions
	screenW int
	screenH int

	// Rendering config
	cellW     int
	cellH     int
	hudHeight int

	// Status
	tick     uint64
	paused   bool
	tooSmall bool
	err      error // Configuration error; the board is not playable

	flash      string
	flashTicks int
}

// Package-level variables for configuration
var (
	configPath   string
	ruleOverride string
	logger       *log.Logger
)

// SetConfigPath sets a custom configuration file. Empty uses the default search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetRuleOverride forces a selection rule ("adjacent" or "exact3") for every variant.
func SetRuleOverride(rule string) {
	ruleOverride = rule
}

// SetLogger sets the logger handed to the engine. Nil disables engine logging.
func SetLogger(l *log.Logger) {
	logger = l
}

func init() {
	registry.Register(string(VariantAdjacent), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantExactThree), func() registry.Game {
		return NewExactThree()
	})
}

// New creates a match-3 game that exchanges neighbouring tiles.
func New() *Game {
	return &Game{variant: VariantAdjacent, hudHeight: 2}
}

// NewExactThree creates a match-3 game that exchanges tiles exactly three
// slots apart along a row, column or diagonal.
func NewExactThree() *Game {
	return &Game{variant: VariantExactThree, hudHeight: 2}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantExactThree {
		return "Match-3 (Exact Three)"
	}
	return "Match-3"
}

// Reset builds a new board from the configuration and the runtime seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.flash = ""
	g.flashTicks = 0
	g.loop = nil
	g.err = nil

	mc, err := g.loadConfig()
	if err != nil {
		g.err = err
		return
	}

	ec, err := mc.ToEngine(uint64(cfg.Seed))
	if err != nil {
		g.err = err
		return
	}
	g.styles, err = mc.Styles()
	if err != nil {
		g.err = err
		return
	}

	g.loop, err = core.NewLoop(ec, core.WithLogger(logger))
	if err != nil {
		g.err = err
		return
	}

	g.cellW = platformcore.Max(2, mc.Display.CellWidth)
	g.cellH = platformcore.Max(1, mc.Display.CellHeight)
	g.sel = NewSelector(ec.Width, ec.Height)
	g.checkScreenSize()
}

// loadConfig reads the board configuration and applies the variant rule.
func (g *Game) loadConfig() (config.Match3Config, error) {
	mc, err := config.LoadMatch3(configPath)
	if err != nil {
		return mc, err
	}
	if err := config.ApplyEnv(&mc); err != nil {
		return mc, err
	}

	if g.variant == VariantExactThree {
		mc.Selection.Rule = core.RuleExactThree.String()
	}
	if ruleOverride != "" {
		mc.Selection.Rule = ruleOverride
	}
	return mc, nil
}

// Resize updates the screen dimensions without rebuilding the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	if g.loop == nil {
		return
	}
	minW, minH := g.boardSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH+g.hudHeight+1
}

// boardSize returns the board footprint including its frame.
func (g *Game) boardSize() (int, int) {
	grid := g.loop.Grid()
	return grid.W*g.cellW + 2, grid.H*g.cellH + 2
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.err != nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)

	// One engine tick per game tick keeps the replay step constant
	g.loop.Tick(1)

	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = ""
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// handleInput applies cursor movement, selection and exchange requests.
func (g *Game) handleInput(in platformcore.InputFrame) {
	grid := g.loop.Grid()

	switch {
	case in.Has(platformcore.ActionUp):
		g.sel.Move(0, 1, grid.W, grid.H)
	case in.Has(platformcore.ActionDown):
		g.sel.Move(0, -1, grid.W, grid.H)
	case in.Has(platformcore.ActionLeft):
		g.sel.Move(-1, 0, grid.W, grid.H)
	case in.Has(platformcore.ActionRight):
		g.sel.Move(1, 0, grid.W, grid.H)
	}

	if in.Has(platformcore.ActionBack) {
		g.sel.Clear()
	}

	if in.Has(platformcore.ActionConfirm) {
		if err := g.sel.Confirm(grid, g.loop.RequestExchange); err != nil {
			g.showRejection(err)
		}
	}
}

// showRejection puts a short reason for a refused exchange in the HUD.
func (g *Game) showRejection(err error) {
	switch {
	case errors.Is(err, core.ErrNotAdjacent):
		g.flash = fmt.Sprintf("Tiles must be %s", ruleHint(g.loop.Config().Rule))
	case errors.Is(err, core.ErrNotReady), errors.Is(err, core.ErrExchangeInProgress):
		g.flash = "Board is still moving"
	case errors.Is(err, core.ErrNotFound):
		g.flash = "Nothing to swap there"
	default:
		g.flash = err.Error()
	}
	g.flashTicks = flashDuration
}

func ruleHint(r core.SelectionRule) string {
	if r == core.RuleExactThree {
		return "exactly 3 apart"
	}
	return "neighbours"
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Paused: g.paused || g.tooSmall || g.err != nil,
		Idle:   g.loop != nil && g.loop.Ready(),
	}
}

// Err returns the configuration error that prevented the board from being built.
func (g *Game) Err() error {
	return g.err
}

// Cursor returns the cursor slot.
func (g *Game) Cursor() core.Coord {
	if g.sel == nil {
		return core.Coord{}
	}
	return g.sel.Cursor
}

// Selected returns the selected tile, if any.
func (g *Game) Selected() (core.TileID, bool) {
	if g.sel == nil {
		return 0, false
	}
	return g.sel.Selected()
}
