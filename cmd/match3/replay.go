package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded session",
	Long: `Rebuild a recorded session from its seed and exchange requests, run it
headlessly to the recorded tick and print the resulting board and stats.
The result is compared against the board stored when the session ended.

Examples:
  match3 replay 12
  match3 replay 12 --log ./replay.log`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("invalid session id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening session database: %v", err)
	}
	session, err := store.LoadSession(id)
	store.Close()
	if err != nil {
		exitErr("loading session: %v", err)
	}
	if session == nil {
		exitErr("no session with id %d", id)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	var opts []core.Option
	if logger != nil {
		opts = append(opts, core.WithLogger(logger))
	}
	loop, err := core.Replay(session.Recording, opts...)
	if err != nil {
		closeLog()
		exitErr("%v", err)
	}

	snap := loop.Snapshot()
	board := snap.BoardText()

	fmt.Printf("Session %d - %s\n", session.ID, session.GameID)
	fmt.Printf("Seed %d  %dx%d  rule %s  %d ticks  %d exchanges\n",
		session.Seed, session.Width, session.Height, session.Rule, snap.Tick, len(session.Recording.Requests))
	fmt.Println()
	fmt.Println(board)
	fmt.Println()
	printStats(snap.Stats)
	fmt.Println()

	if board == session.FinalBoard {
		fmt.Println("Replay matches the recorded board.")
		return
	}
	closeLog()
	exitErr("replay diverged from the recorded board")
}

func printStats(s core.Stats) {
	fmt.Printf("  %-20s %d\n", "Exchanges requested", s.ExchangesRequested)
	fmt.Printf("  %-20s %d\n", "Exchanges rejected", s.ExchangesRejected)
	fmt.Printf("  %-20s %d\n", "Exchanges kept", s.ExchangesKept)
	fmt.Printf("  %-20s %d\n", "Exchanges reverted", s.ExchangesReverted)
	fmt.Printf("  %-20s %d\n", "Tiles removed", s.TilesRemoved)
	fmt.Printf("  %-20s %d\n", "Tiles spawned", s.TilesSpawned)
	fmt.Printf("  %-20s %d\n", "Cascades", s.Cascades)
	fmt.Printf("  %-20s %d\n", "Longest cascade", s.LongestCascade)
}
