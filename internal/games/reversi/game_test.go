package reversi

import (
	"errors"
	"testing"
)

func emptyRows() []string {
	rows := make([]string, Height)
	for i := range rows {
		rows[i] = "--------"
	}
	return rows
}

// gameFromRows builds a running game with the given side to move.
func gameFromRows(t *testing.T, turn Disk, rows ...string) *Game {
	t.Helper()
	full := emptyRows()
	copy(full, rows)
	return &Game{board: boardFromRows(t, full...), turn: turn}
}

func TestDiskFlip(t *testing.T) {
	if Dark.Flipped() != Light || Light.Flipped() != Dark {
		t.Fatal("Flipped should swap dark and light")
	}

	d := Dark
	d.Flip()
	if d != Light {
		t.Errorf("Flip() on dark = %v, want light", d)
	}
	d.Flip()
	if d != Dark {
		t.Errorf("Flip() twice = %v, want dark", d)
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame()

	if g.Turn() != Dark {
		t.Errorf("Turn() = %v, want dark", g.Turn())
	}
	if g.IsOver() {
		t.Error("new game reported over")
	}
	for _, side := range Sides() {
		if g.Player(side) != Manual {
			t.Errorf("Player(%v) = %v, want manual", side, g.Player(side))
		}
	}
	if !g.Board().Equal(NewBoard()) {
		t.Error("new game board is not the starting position")
	}
}

func TestFlipTurnChange(t *testing.T) {
	g := NewGame()
	if got := g.FlipTurn(); got != TurnChanged {
		t.Fatalf("FlipTurn() = %v, want change", got)
	}
	if g.Turn() != Light {
		t.Errorf("Turn() = %v, want light", g.Turn())
	}
}

func TestFlipTurnPass(t *testing.T) {
	// Light has no disk that can flank the dark corner; dark can still capture.
	g := gameFromRows(t, Dark,
		"xo------",
	)

	if got := g.FlipTurn(); got != TurnPassed {
		t.Fatalf("FlipTurn() = %v, want pass", got)
	}
	if g.Turn() != Dark {
		t.Errorf("Turn() after pass = %v, want dark", g.Turn())
	}
	if g.IsOver() {
		t.Error("pass must not end the game")
	}
	if len(g.ValidMoves()) == 0 {
		t.Error("side to move after a pass has no legal move")
	}
}

func TestFlipTurnGameOver(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{
			name: "full board",
			rows: []string{
				"xxxxxxxx", "xxxxxxxx", "xxxxxxxx", "xxxxxxxx",
				"oooooooo", "oooooooo", "oooooooo", "oooooooo",
			},
		},
		{
			name: "single colour stalemate",
			rows: []string{"x-------", "--------", "-----xx-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameFromRows(t, Dark, tt.rows...)
			if got := g.FlipTurn(); got != TurnGameOver {
				t.Fatalf("FlipTurn() = %v, want game over", got)
			}
			if !g.IsOver() {
				t.Error("IsOver() = false after game over")
			}
			if got := g.FlipTurn(); got != TurnGameOver {
				t.Errorf("FlipTurn() on finished game = %v, want game over", got)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	t.Run("playable side unchanged", func(t *testing.T) {
		g := NewGame()
		if got := g.Settle(); got != TurnChanged || g.Turn() != Dark {
			t.Errorf("Settle() = %v with turn %v, want change with dark", got, g.Turn())
		}
	})

	t.Run("stuck side passes", func(t *testing.T) {
		g := gameFromRows(t, Light, "xo------")
		if got := g.Settle(); got != TurnPassed || g.Turn() != Dark {
			t.Errorf("Settle() = %v with turn %v, want pass to dark", got, g.Turn())
		}
	})

	t.Run("stalemate ends game", func(t *testing.T) {
		g := gameFromRows(t, Dark, "x-------")
		if got := g.Settle(); got != TurnGameOver || !g.IsOver() {
			t.Errorf("Settle() = %v over=%v, want game over", got, g.IsOver())
		}
	})
}

func TestPlace(t *testing.T) {
	g := NewGame()

	move, err := g.Place(C(2, 3))
	if err != nil {
		t.Fatalf("Place(2,3) failed: %v", err)
	}
	if move.Disk != Dark || move.Result != TurnChanged {
		t.Errorf("move = %+v, want dark with turn change", move)
	}
	if len(move.Flipped) != 1 || move.Flipped[0] != C(3, 3) {
		t.Errorf("Flipped = %v, want [(3,3)]", move.Flipped)
	}
	for _, c := range []Coordinate{C(2, 3), C(3, 3), C(4, 3)} {
		if d, ok := g.Board().DiskAt(c); !ok || d != Dark {
			t.Errorf("DiskAt(%v) = %v,%v, want dark", c, d, ok)
		}
	}
	if g.Turn() != Light {
		t.Errorf("Turn() = %v, want light", g.Turn())
	}
}

func TestPlaceIllegal(t *testing.T) {
	tests := []struct {
		name string
		at   Coordinate
	}{
		{"occupied", C(3, 3)},
		{"no capture", C(0, 0)},
		{"off board", C(9, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			before := g.Clone()

			_, err := g.Place(tt.at)
			if !errors.Is(err, ErrIllegalPlacement) {
				t.Fatalf("Place(%v) error = %v, want ErrIllegalPlacement", tt.at, err)
			}
			if !g.Equal(before) {
				t.Error("illegal placement changed the game")
			}
		})
	}
}

func TestPlaceReportsPass(t *testing.T) {
	g := gameFromRows(t, Dark,
		"xo------",
		"--------",
		"xo------",
	)

	move, err := g.Place(C(2, 0))
	if err != nil {
		t.Fatalf("Place(2,0) failed: %v", err)
	}
	if move.Result != TurnPassed {
		t.Fatalf("Result = %v, want pass", move.Result)
	}
	if g.Turn() != Dark {
		t.Errorf("Turn() = %v, want dark to move again", g.Turn())
	}
}

func TestPlaceAfterGameOver(t *testing.T) {
	g := gameFromRows(t, Dark, "xo------")
	if _, err := g.Place(C(2, 0)); err != nil {
		t.Fatalf("Place(2,0) failed: %v", err)
	}
	if !g.IsOver() {
		t.Fatal("expected game over once light has no disks")
	}
	if _, err := g.Place(C(3, 0)); !errors.Is(err, ErrGameOver) {
		t.Errorf("Place after game over error = %v, want ErrGameOver", err)
	}
	if winner, ok := g.Winner(); !ok || winner != Dark {
		t.Errorf("Winner() = %v,%v, want dark", winner, ok)
	}
	if g.Status() != "Dark wins" {
		t.Errorf("Status() = %q, want %q", g.Status(), "Dark wins")
	}
}

func TestIsComputerTurn(t *testing.T) {
	g := NewGameWithPlayers(Computer, Manual)

	if !g.IsComputerTurn() {
		t.Error("dark computer to move: IsComputerTurn() = false")
	}
	if g.IsComputerTurnFor(Light) {
		t.Error("IsComputerTurnFor(light) = true while dark is to move")
	}

	g.SetPlayer(Dark, Manual)
	if g.IsComputerTurn() {
		t.Error("IsComputerTurn() = true after switching dark to manual")
	}

	g.SetPlayer(Light, Computer)
	g.FlipTurn()
	if !g.IsComputerTurnFor(Light) {
		t.Error("IsComputerTurnFor(light) = false on light's computer turn")
	}

	g.over = true
	if g.IsComputerTurn() {
		t.Error("IsComputerTurn() = true on a finished game")
	}
}

func TestGameReset(t *testing.T) {
	g := NewGameWithPlayers(Computer, Manual)
	g.Place(C(2, 3))
	g.Reset()

	if g.Turn() != Dark || g.IsOver() || !g.Board().Equal(NewBoard()) {
		t.Error("Reset did not restore the starting position")
	}
	if g.Player(Dark) != Computer {
		t.Error("Reset should keep player types")
	}
}

func TestParsePlayerType(t *testing.T) {
	tests := []struct {
		in      string
		want    PlayerType
		wantErr bool
	}{
		{"manual", Manual, false},
		{"Human", Manual, false},
		{"0", Manual, false},
		{"computer", Computer, false},
		{"cpu", Computer, false},
		{"1", Computer, false},
		{"robot", Manual, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlayerType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlayerType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlayerType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in      string
		want    Coordinate
		wantErr bool
	}{
		{"c4", C(2, 3), false},
		{"A1", C(0, 0), false},
		{"h8", C(7, 7), false},
		{"2,3", C(2, 3), false},
		{" 7 , 0 ", C(7, 0), false},
		{"i1", Coordinate{}, true},
		{"a9", Coordinate{}, true},
		{"8,0", Coordinate{}, true},
		{"x,y", Coordinate{}, true},
		{"", Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoordinate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if got := C(2, 3).Notation(); got != "c4" {
		t.Errorf("Notation() = %q, want c4", got)
	}
}

func TestCanceller(t *testing.T) {
	calls := 0
	c := NewCanceller(func() { calls++ })

	if c.IsCancelled() {
		t.Fatal("new canceller reported cancelled")
	}
	c.Cancel()
	c.Cancel()

	if !c.IsCancelled() {
		t.Error("IsCancelled() = false after Cancel")
	}
	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
}
