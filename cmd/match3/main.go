// match3 is a terminal match-3 board built on a deterministic rules engine.
//
// Usage:
//
//	match3 list              - List board variants
//	match3 play [variant]    - Play a board (default: match3)
//	match3 menu              - Start menu to pick variants interactively
//	match3 serve             - Start SSH server for remote play
//	match3 history [variant] - Show recorded sessions
//	match3 replay <id>       - Re-simulate a recorded session
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.arcade/match3.db)
//	--log <file>    - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles in your terminal",
	Long: `Match-3 is a terminal tile-swapping board. Exchange two tiles to line up
three or more of a kind; lined-up tiles vanish, the rest fall and new ones
drop in from the top.

Available commands:
  list     - Show board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  history  - View recorded sessions
  replay   - Re-simulate a recorded session

Examples:
  match3 list
  match3 play
  match3 play match3_three
  match3 menu
  match3 serve --ssh :2222
  match3 replay 12`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/match3.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
}

// openLogger opens the --log file and hands the logger to the boards.
// The terminal belongs to the TUI, so without --log nothing is logged.
// The returned close function is never nil.
func openLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return nil, func() {}
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           log.DebugLevel,
	})
	match3.SetLogger(logger)

	return logger, func() {
		match3.SetLogger(nil)
		f.Close()
	}
}

// exitErr prints an error in the CLI format and exits.
func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
