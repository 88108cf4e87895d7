package reversi

import "fmt"

// TurnResult reports what happened when the turn advanced.
type TurnResult int

const (
	// TurnChanged means the other side is now to move.
	TurnChanged TurnResult = iota
	// TurnPassed means the other side had no legal move and was skipped;
	// the side that just moved is to move again.
	TurnPassed
	// TurnGameOver means neither side can move.
	TurnGameOver
)

// String returns a human-readable name for the result.
func (r TurnResult) String() string {
	switch r {
	case TurnChanged:
		return "change"
	case TurnPassed:
		return "pass"
	case TurnGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Move describes an applied placement.
type Move struct {
	Coordinate Coordinate
	Disk       Disk
	Flipped    []Coordinate
	Result     TurnResult
}

// Game wraps a Board with the side to move, the player type of each side and
// the game-over flag. Like Board it is not safe for concurrent use.
type Game struct {
	board   *Board
	turn    Disk
	players [2]PlayerType
	over    bool
}

// NewGame creates a game in the starting position with Dark to move and both
// sides played manually.
func NewGame() *Game {
	return NewGameWithPlayers(Manual, Manual)
}

// NewGameWithPlayers creates a starting-position game with the given player types.
func NewGameWithPlayers(dark, light PlayerType) *Game {
	return &Game{
		board:   NewBoard(),
		turn:    Dark,
		players: [2]PlayerType{dark, light},
	}
}

// Reset restores the starting position. Player types are kept.
func (g *Game) Reset() {
	g.board.Reset()
	g.turn = Dark
	g.over = false
}

// Board returns the underlying board.
func (g *Game) Board() *Board {
	return g.board
}

// Turn returns the side to move. It is meaningless once the game is over.
func (g *Game) Turn() Disk {
	return g.turn
}

// IsOver returns true once neither side can move.
func (g *Game) IsOver() bool {
	return g.over
}

// Player returns the player type configured for side.
func (g *Game) Player(side Disk) PlayerType {
	return g.players[side]
}

// SetPlayer changes who controls side.
func (g *Game) SetPlayer(side Disk, p PlayerType) {
	g.players[side] = p
}

// IsComputerTurn reports whether the side to move is computer-controlled.
func (g *Game) IsComputerTurn() bool {
	return g.IsComputerTurnFor(g.turn)
}

// IsComputerTurnFor reports whether side is to move, is computer-controlled
// and the game is still running.
func (g *Game) IsComputerTurnFor(side Disk) bool {
	return !g.over && side == g.turn && g.players[side] == Computer
}

// FlipTurn hands the move to the other side and resolves passes.
// If the new side cannot move but the previous one can, the turn goes back
// and TurnPassed is returned. If neither can move the game ends.
// Afterwards the side to move always has a legal move unless the game is over.
func (g *Game) FlipTurn() TurnResult {
	if g.over {
		return TurnGameOver
	}
	g.turn.Flip()
	return g.Settle()
}

// Settle applies the pass and game-over rules to the current side without
// flipping first. Restored positions use it when the side to move is stuck.
// It returns TurnChanged when the side to move can already play.
func (g *Game) Settle() TurnResult {
	if g.over {
		return TurnGameOver
	}
	if g.board.HasValidMove(g.turn) {
		return TurnChanged
	}
	if g.board.HasValidMove(g.turn.Flipped()) {
		g.turn.Flip()
		return TurnPassed
	}
	g.over = true
	return TurnGameOver
}

// ValidMoves returns the legal placements for the side to move.
func (g *Game) ValidMoves() []Coordinate {
	if g.over {
		return nil
	}
	return g.board.ValidMoves(g.turn)
}

// Place puts a disk for the side to move at c, flips the captured disks and
// advances the turn. The game is unchanged when an error is returned.
func (g *Game) Place(c Coordinate) (Move, error) {
	if g.over {
		return Move{}, ErrGameOver
	}

	side := g.turn
	flipped := g.board.FlippedDiskCoordinatesByPlacing(side, c)
	if len(flipped) == 0 {
		return Move{}, fmt.Errorf("%w: %s at %s", ErrIllegalPlacement, side, c)
	}

	g.board.SetDisks(side, append([]Coordinate{c}, flipped...)...)

	return Move{
		Coordinate: c,
		Disk:       side,
		Flipped:    flipped,
		Result:     g.FlipTurn(),
	}, nil
}

// Winner returns the side with more disks. The bool is false on a tie.
// It is only meaningful once the game is over.
func (g *Game) Winner() (Disk, bool) {
	return g.board.SideWithMoreDisks()
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	clone := *g
	clone.board = g.board.Clone()
	return &clone
}

// Equal compares board, players and over flag. The turn is only compared while
// the game is running since the save format does not record it afterwards.
func (g *Game) Equal(other *Game) bool {
	if g.over != other.over || g.players != other.players {
		return false
	}
	if !g.over && g.turn != other.turn {
		return false
	}
	return g.board.Equal(other.board)
}

// Status returns a one-line description: whose turn it is, or the outcome.
func (g *Game) Status() string {
	if !g.over {
		return fmt.Sprintf("%s to move", g.turn.Title())
	}
	if winner, ok := g.Winner(); ok {
		return fmt.Sprintf("%s wins", winner.Title())
	}
	return "Tie"
}
