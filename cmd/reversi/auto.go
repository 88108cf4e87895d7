package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var (
	flagGames    int
	flagStrategy string
	flagNoRecord bool
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Play computer-vs-computer games headless",
	Long: `Play a batch of games where both sides use the same computer strategy,
print the tally and record every result.

Strategies:
  random  - Any valid move
  greedy  - The move that flips the most disks
  first   - The first valid move in row-major order

Examples:
  reversi auto
  reversi auto --games 100 --strategy greedy
  reversi auto --games 10 --seed 42 --no-record`,
	Run: runAuto,
}

func init() {
	autoCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	autoCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Computer strategy (default from config)")
	autoCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save results to the database")
}

// tally accumulates batch statistics.
type tally struct {
	games     int
	darkWins  int
	lightWins int
	ties      int
	darkSum   int
	lightSum  int
}

func (t *tally) add(r reversi.Result) {
	t.games++
	t.darkSum += r.DarkCount
	t.lightSum += r.LightCount
	switch {
	case r.Tie:
		t.ties++
	case r.Winner == reversi.Dark:
		t.darkWins++
	default:
		t.lightWins++
	}
}

// playAuto plays one game to the end with selector on both sides.
func playAuto(selector reversi.MoveSelector) (reversi.Result, error) {
	g := reversi.NewGameWithPlayers(reversi.Computer, reversi.Computer)
	for !g.IsOver() {
		c, ok := selector.SelectMove(g.Board(), g.Turn())
		if !ok {
			return reversi.Result{}, fmt.Errorf("%s has no move in an open game", g.Turn())
		}
		if _, err := g.Place(c); err != nil {
			return reversi.Result{}, err
		}
	}
	return reversi.ResultOf(g), nil
}

func runAuto(_ *cobra.Command, _ []string) {
	if flagGames <= 0 {
		fatalf("--games must be positive")
	}

	strategy := flagStrategy
	if strategy == "" {
		strategy = appConfig.Computer.Strategy
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	selector, err := reversi.SelectorByName(strategy, seed)
	if err != nil {
		fatalf("%v", err)
	}

	var store *storage.Store
	if !flagNoRecord {
		store = openStore()
		defer store.Close()
	}

	start := time.Now()
	var t tally
	for i := range flagGames {
		r, err := playAuto(selector)
		if err != nil {
			fatalf("game %d: %v", i+1, err)
		}
		t.add(r)
		logger.Debug("game finished", "game", i+1, "dark", r.DarkCount, "light", r.LightCount, "winner", r.WinnerName())

		if store != nil {
			if _, err := store.SaveResult(storage.NewResultEntry(storage.SourceAuto, strategy, r)); err != nil {
				logger.Warn("could not record result", "error", err)
			}
		}
	}

	fmt.Printf("Played %d games with strategy %q in %s\n", t.games, strategy, time.Since(start).Round(time.Millisecond))
	fmt.Println()
	fmt.Printf("  %-12s %d\n", "Dark wins", t.darkWins)
	fmt.Printf("  %-12s %d\n", "Light wins", t.lightWins)
	fmt.Printf("  %-12s %d\n", "Ties", t.ties)
	fmt.Printf("  %-12s %.1f - %.1f\n", "Avg disks",
		float64(t.darkSum)/float64(t.games), float64(t.lightSum)/float64(t.games))
}
