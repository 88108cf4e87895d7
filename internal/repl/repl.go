// Package repl implements a line-oriented Reversi console.
// Computer-controlled sides answer immediately after each command.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

// ErrQuit is returned by Execute when the user asks to leave.
var ErrQuit = errors.New("repl: quit")

// LineReader is the subset of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Options configure a REPL.
type Options struct {
	Dark     reversi.PlayerType
	Light    reversi.PlayerType
	Strategy string
	Seed     int64

	// OnResult is called once for every game that ends.
	OnResult func(reversi.Result)
}

// REPL holds one game and the command table.
type REPL struct {
	opts     Options
	game     *reversi.Game
	selector reversi.MoveSelector
	reported bool
	commands map[string]*Command
	order    []*Command
}

// New creates a REPL with a fresh game.
func New(opts Options) (*REPL, error) {
	selector, err := reversi.SelectorByName(opts.Strategy, opts.Seed)
	if err != nil {
		return nil, err
	}
	r := &REPL{
		opts:     opts,
		game:     reversi.NewGameWithPlayers(opts.Dark, opts.Light),
		selector: selector,
		commands: make(map[string]*Command),
	}
	r.registerCommands()
	return r, nil
}

// Game returns the current game.
func (r *REPL) Game() *reversi.Game {
	return r.game
}

// Prompt describes the side to move, e.g. "reversi [dark]> ".
func (r *REPL) Prompt() string {
	if r.game.IsOver() {
		return "reversi [over]> "
	}
	return fmt.Sprintf("reversi [%s]> ", r.game.Turn())
}

// Execute runs one command line and returns its output.
// A bare coordinate such as "c4" is shorthand for "place c4".
func (r *REPL) Execute(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}

	name := strings.ToLower(parts[0])
	cmd, ok := r.commands[name]
	if !ok {
		if _, err := reversi.ParseCoordinate(name); err == nil {
			return r.place(parts)
		}
		return "", fmt.Errorf("unknown command %q, type 'help' for commands", parts[0])
	}
	return cmd.Handler(parts[1:])
}

// Run reads commands from rl until EOF or quit.
// Command errors are printed and do not stop the loop.
func Run(rl LineReader, out io.Writer, opts Options) error {
	r, err := New(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Reversi console. Type 'help' for commands.")
	fmt.Fprintln(out, r.showText())
	if text := r.playComputer(); text != "" {
		fmt.Fprintln(out, text)
	}

	for {
		rl.SetPrompt(r.Prompt())
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}

		text, err := r.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
}

// NewReadline opens a terminal line editor with persistent history.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "reversi> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}
