package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	match3core "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagConfig string
	flagRule   string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start playing the given board variant (default: match3).

Controls:
  Arrows/WASD/hjkl - Move cursor
  Enter/Space      - Select a tile, then its partner to swap
  B/Esc            - Drop the selection (while paused: leave)
  P                - Pause
  R                - New board
  Q/Ctrl+C         - Quit

Selection rules:
  adjacent - Swap horizontal or vertical neighbours
  exact3   - Swap tiles exactly three slots apart in a row, column or diagonal

Examples:
  match3 play
  match3 play match3_three
  match3 play --rule exact3
  match3 play --seed 42 --log ./match3.log
  match3 play --config ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().StringVar(&flagRule, "rule", "", "Selection rule override: adjacent, exact3")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	menuCmd.Flags().StringVar(&flagRule, "rule", "", "Selection rule override: adjacent, exact3")
}

// configureBoards applies the board flags before any variant is created.
func configureBoards() error {
	if flagRule != "" {
		if _, err := match3core.ParseSelectionRule(flagRule); err != nil {
			return err
		}
	}
	match3.SetConfigPath(flagConfig)
	match3.SetRuleOverride(flagRule)
	return nil
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := string(match3.VariantAdjacent)
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if the variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available boards.")
		os.Exit(1)
	}

	if err := configureBoards(); err != nil {
		exitErr("%v", err)
	}
	logger, closeLog := openLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		exitErr("creating board: %v", err)
	}

	// Open session storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		// Continue without storage - the board still works
		store = nil
	}

	runErr := tui.Run(game, store, terminalConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		exitErr("running board: %v", runErr)
	}
}
