package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recorded sessions",
	Long: `List recorded sessions, newest first. Without a variant every board is listed.

Examples:
  match3 history
  match3 history match3_three --limit 5
  match3 history match3 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded sessions instead of listing them")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			exitErr("unknown board %q", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening session database: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(gameID); err != nil {
			store.Close()
			exitErr("clearing sessions: %v", err)
		}
		fmt.Println("Sessions cleared.")
		return
	}

	sessions, err := store.ListSessions(gameID, flagHistoryLimit)
	if err != nil {
		store.Close()
		exitErr("retrieving sessions: %v", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-13s  %-8s  %-7s  %-7s  %-8s  %s\n",
		"ID", "Board", "Removed", "Cascade", "Kept", "Reverted", "Date")
	fmt.Printf("  %-5s  %-13s  %-8s  %-7s  %-7s  %-8s  %s\n",
		"--", "-----", "-------", "-------", "----", "--------", "----")

	for _, s := range sessions {
		fmt.Printf("  %-5d  %-13s  %-8d  %-7d  %-7d  %-8d  %s\n",
			s.ID, s.GameID, s.TilesRemoved, s.LongestCascade, s.ExchangesKept, s.Reverted,
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if gameID != "" {
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Sessions: %d  Tiles removed: %d  Best cascade: %d\n",
				stats.Sessions, stats.TilesRemoved, stats.LongestCascade)
		}
	}

	fmt.Println()
	fmt.Println("Run 'match3 replay <id>' to re-simulate a session.")
}
