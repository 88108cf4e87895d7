package repl

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// Command is one console command.
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(args []string) (string, error)
}

func (r *REPL) register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.order = append(r.order, cmd)
}

func (r *REPL) registerCommands() {
	r.register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start a new game",
		Usage:       "new [dark-player light-player]",
		Handler:     r.newGame,
	})
	r.register(&Command{
		Name:        "show",
		ShortName:   "s",
		Description: "Print the board",
		Usage:       "show",
		Handler:     func([]string) (string, error) { return r.showText(), nil },
	})
	r.register(&Command{
		Name:        "moves",
		ShortName:   "m",
		Description: "List legal moves for the side to move",
		Usage:       "moves",
		Handler:     r.moves,
	})
	r.register(&Command{
		Name:        "place",
		ShortName:   "p",
		Description: "Place a disk, e.g. 'place c4' or just 'c4'",
		Usage:       "place <coord>",
		Handler:     func(args []string) (string, error) { return r.place(append([]string{"place"}, args...)) },
	})
	r.register(&Command{
		Name:        "player",
		Description: "Switch a side between manual and computer",
		Usage:       "player <dark|light> <manual|computer>",
		Handler:     r.setPlayer,
	})
	r.register(&Command{
		Name:        "save",
		Description: "Write the game to a file",
		Usage:       "save <file>",
		Handler:     r.save,
	})
	r.register(&Command{
		Name:        "load",
		Description: "Read a game from a file",
		Usage:       "load <file>",
		Handler:     r.load,
	})
	r.register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.help,
	})
	r.register(&Command{
		Name:        "quit",
		ShortName:   "q",
		Description: "Leave the console",
		Usage:       "quit",
		Handler:     func([]string) (string, error) { return "", ErrQuit },
	})
	r.commands["exit"] = r.commands["quit"]
}

func (r *REPL) newGame(args []string) (string, error) {
	dark, light := r.game.Player(reversi.Dark), r.game.Player(reversi.Light)
	switch len(args) {
	case 0:
	case 2:
		var err error
		if dark, err = reversi.ParsePlayerType(args[0]); err != nil {
			return "", err
		}
		if light, err = reversi.ParsePlayerType(args[1]); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("usage: new [dark-player light-player]")
	}

	r.game = reversi.NewGameWithPlayers(dark, light)
	r.reported = false
	return r.withComputer(r.showText()), nil
}

func (r *REPL) moves([]string) (string, error) {
	if r.game.IsOver() {
		return "No moves: " + r.game.Status(), nil
	}
	moves := r.game.ValidMoves()
	names := make([]string, len(moves))
	for i, c := range moves {
		names[i] = c.Notation()
	}
	return fmt.Sprintf("%s: %s", r.game.Turn().Title(), strings.Join(names, " ")), nil
}

// place expects parts[0] to be the command or the coordinate itself.
func (r *REPL) place(parts []string) (string, error) {
	coord := parts[0]
	if len(parts) > 1 {
		coord = parts[1]
	} else if strings.EqualFold(coord, "place") || coord == "p" {
		return "", fmt.Errorf("usage: place <coord>")
	}

	c, err := reversi.ParseCoordinate(coord)
	if err != nil {
		return "", err
	}
	if r.game.IsComputerTurn() {
		return "", fmt.Errorf("%s is computer-controlled", r.game.Turn())
	}

	move, err := r.game.Place(c)
	if err != nil {
		return "", err
	}

	lines := []string{describeMove(move, false)}
	lines = append(lines, r.showText())
	return r.withComputer(strings.Join(lines, "\n")), nil
}

func (r *REPL) setPlayer(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("usage: player <dark|light> <manual|computer>")
	}
	side, ok := reversi.ParseDisk(strings.ToLower(args[0]))
	if !ok {
		return "", fmt.Errorf("unknown side %q", args[0])
	}
	p, err := reversi.ParsePlayerType(args[1])
	if err != nil {
		return "", err
	}

	r.game.SetPlayer(side, p)
	return r.withComputer(fmt.Sprintf("%s is now %s", side.Title(), p)), nil
}

func (r *REPL) save(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: save <file>")
	}
	if err := reversi.SaveFile(args[0], r.game); err != nil {
		return "", err
	}
	return "Saved to " + args[0], nil
}

func (r *REPL) load(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: load <file>")
	}
	g, err := reversi.LoadFile(args[0])
	if err != nil {
		return "", err
	}

	r.game = g
	r.reported = g.IsOver()
	var lines []string
	if r.game.Settle() == reversi.TurnPassed {
		lines = append(lines, fmt.Sprintf("%s passes", r.game.Turn().Flipped().Title()))
	}
	lines = append(lines, r.showText())
	return r.withComputer(strings.Join(lines, "\n")), nil
}

func (r *REPL) help(args []string) (string, error) {
	var sb strings.Builder
	if len(args) > 0 {
		cmd, ok := r.commands[strings.ToLower(args[0])]
		if !ok {
			return "", fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(&sb, "%s - %s\nUsage: %s", cmd.Name, cmd.Description, cmd.Usage)
		return sb.String(), nil
	}

	sb.WriteString("Commands:")
	for _, cmd := range r.order {
		fmt.Fprintf(&sb, "\n  %-40s %s", cmd.Usage, cmd.Description)
	}
	return sb.String(), nil
}

// withComputer appends the computer's replies, if any, to text.
func (r *REPL) withComputer(text string) string {
	if more := r.playComputer(); more != "" {
		return text + "\n" + more
	}
	r.report()
	return text
}

// playComputer plays computer turns until a manual side is to move or the
// game ends.
func (r *REPL) playComputer() string {
	var lines []string
	for r.game.IsComputerTurn() {
		c, ok := r.selector.SelectMove(r.game.Board(), r.game.Turn())
		if !ok {
			break
		}
		move, err := r.game.Place(c)
		if err != nil {
			break
		}
		lines = append(lines, describeMove(move, true))
	}
	if len(lines) == 0 {
		return ""
	}
	lines = append(lines, r.showText())
	r.report()
	return strings.Join(lines, "\n")
}

func (r *REPL) report() {
	if !r.game.IsOver() || r.reported {
		return
	}
	r.reported = true
	if r.opts.OnResult != nil {
		r.opts.OnResult(reversi.ResultOf(r.game))
	}
}

func describeMove(m reversi.Move, computer bool) string {
	who := m.Disk.Title()
	if computer {
		who += " (computer)"
	}
	text := fmt.Sprintf("%s plays %s, flipping %d", who, m.Coordinate.Notation(), len(m.Flipped))
	switch m.Result {
	case reversi.TurnPassed:
		text += fmt.Sprintf("; %s passes", m.Disk.Flipped().Title())
	case reversi.TurnGameOver:
		text += "; game over"
	}
	return text
}

// showText renders the board with coordinates, counts and status.
func (r *REPL) showText() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for y, row := range strings.Split(r.game.Board().String(), "\n") {
		fmt.Fprintf(&sb, "%d", y+1)
		for _, ch := range row {
			sb.WriteByte(' ')
			sb.WriteRune(ch)
		}
		sb.WriteByte('\n')
	}
	b := r.game.Board()
	fmt.Fprintf(&sb, "Dark %d (%s)  Light %d (%s)  %s",
		b.CountDisks(reversi.Dark), r.game.Player(reversi.Dark),
		b.CountDisks(reversi.Light), r.game.Player(reversi.Light),
		r.game.Status())
	return sb.String()
}
