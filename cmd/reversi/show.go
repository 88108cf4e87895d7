package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

var flagNoHints bool

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a saved position",
	Long: `Print the board, turn, disk counts and valid moves of a save file.
Without a file the starting position is shown; "-" reads standard input.

Examples:
  reversi show
  reversi show ~/.reversi/game.txt
  cat game.txt | reversi show -`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShow,
}

var movesCmd = &cobra.Command{
	Use:   "moves [file]",
	Short: "Print the valid moves of a saved position",
	Long: `Print the valid moves for the side to move, one per line, in
row-major order.

Examples:
  reversi moves game.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMoves,
}

func init() {
	showCmd.Flags().BoolVar(&flagNoHints, "no-hints", false, "Do not mark valid moves on the board")
}

// loadPosition reads the game named by args and settles it.
func loadPosition(args []string) (*reversi.Game, reversi.TurnResult) {
	if len(args) == 0 {
		return reversi.NewGame(), reversi.TurnChanged
	}

	var (
		g   *reversi.Game
		err error
	)
	if args[0] == "-" {
		g, err = reversi.Read(os.Stdin)
	} else {
		g, err = reversi.LoadFile(config.ExpandPath(args[0]))
	}
	if err != nil {
		fatalf("%v", err)
	}
	return g, g.Settle()
}

func runShow(_ *cobra.Command, args []string) {
	g, settled := loadPosition(args)

	fmt.Println(renderBoard(g, !flagNoHints))
	fmt.Println()
	fmt.Println(renderStatus(g))
	if settled == reversi.TurnPassed {
		fmt.Printf("%s has no move and passes\n", g.Turn().Flipped().Title())
	}

	if !g.IsOver() {
		moves := g.ValidMoves()
		notations := make([]string, len(moves))
		for i, c := range moves {
			notations[i] = c.Notation()
		}
		fmt.Printf("Valid moves: %s\n", strings.Join(notations, " "))
	}
}

func runMoves(_ *cobra.Command, args []string) {
	g, _ := loadPosition(args)
	if g.IsOver() {
		fmt.Println("Game over:", g.Status())
		return
	}
	for _, c := range g.ValidMoves() {
		fmt.Printf("%s %d,%d\n", c.Notation(), c.X, c.Y)
	}
}

var (
	darkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	lightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Bold(true)
)

// renderBoard draws the board with coordinate labels.
func renderBoard(g *reversi.Game, hints bool) string {
	var valid []reversi.Coordinate
	if hints && !g.IsOver() {
		valid = g.ValidMoves()
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("  a b c d e f g h"))
	for y := range reversi.Height {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d", y+1)))
		for x := range reversi.Width {
			c := reversi.C(x, y)
			b.WriteString(" ")
			d, ok := g.Board().DiskAt(c)
			switch {
			case ok && d == reversi.Dark:
				b.WriteString(darkStyle.Render("●"))
			case ok:
				b.WriteString(lightStyle.Render("○"))
			case slices.Contains(valid, c):
				b.WriteString(hintStyle.Render("+"))
			default:
				b.WriteString(emptyStyle.Render("·"))
			}
		}
	}
	return b.String()
}

// renderStatus prints counts, players and the game status.
func renderStatus(g *reversi.Game) string {
	board := g.Board()
	return fmt.Sprintf("Dark %d (%s)  Light %d (%s)  %s",
		board.CountDisks(reversi.Dark), g.Player(reversi.Dark),
		board.CountDisks(reversi.Light), g.Player(reversi.Light),
		statusStyle.Render(g.Status()))
}
