package reversi

// Result summarises a finished game for persistence and display.
type Result struct {
	DarkPlayer  PlayerType
	LightPlayer PlayerType
	DarkCount   int
	LightCount  int
	Winner      Disk
	Tie         bool
}

// ResultOf builds a Result from the game's current board.
func ResultOf(g *Game) Result {
	winner, ok := g.Winner()
	return Result{
		DarkPlayer:  g.Player(Dark),
		LightPlayer: g.Player(Light),
		DarkCount:   g.board.CountDisks(Dark),
		LightCount:  g.board.CountDisks(Light),
		Winner:      winner,
		Tie:         !ok,
	}
}

// WinnerName returns "dark", "light" or "tie".
func (r Result) WinnerName() string {
	if r.Tie {
		return "tie"
	}
	return r.Winner.String()
}
