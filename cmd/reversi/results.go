package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagLimit int

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded results and stats",
	Long: `Display the most recent finished games and totals per source and
strategy.

Examples:
  reversi results
  reversi results --limit 50`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
}

func runResults(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	recent, err := store.RecentResults(flagLimit)
	if err != nil {
		fatalf("retrieving results: %v", err)
	}

	fmt.Println("Recent games")
	fmt.Println()

	if len(recent) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'reversi play' or 'reversi auto' to record some!")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-7s  %-6s  %s\n", "Date", "Source", "Dark", "Light", "Score", "Winner", "Strategy")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-7s  %-6s  %s\n", "----", "------", "----", "-----", "-----", "------", "--------")
	for _, r := range recent {
		fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-7s  %-6s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.DarkPlayer, r.LightPlayer,
			fmt.Sprintf("%d-%d", r.DarkCount, r.LightCount), r.Winner, orDash(r.Strategy))
	}

	stats, err := store.Stats()
	if err != nil {
		fatalf("retrieving stats: %v", err)
	}

	fmt.Println()
	fmt.Println("Totals")
	fmt.Println()
	fmt.Printf("  %-6s  %-8s  %5s  %5s  %5s  %5s  %s\n", "Source", "Strategy", "Games", "Dark", "Light", "Ties", "Avg disks")
	for _, st := range stats {
		fmt.Printf("  %-6s  %-8s  %5d  %5d  %5d  %5d  %.1f - %.1f\n",
			st.Source, orDash(st.Strategy), st.Games, st.DarkWins, st.LightWins, st.Ties, st.AvgDark, st.AvgLight)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
