package reversi

import (
	"slices"
	"testing"
)

func TestSelectorsPickLegalMoves(t *testing.T) {
	selectors := map[string]MoveSelector{
		StrategyRandom: NewRandomSelector(1),
		StrategyGreedy: GreedySelector{},
		StrategyFirst:  FirstSelector{},
	}

	for name, sel := range selectors {
		t.Run(name, func(t *testing.T) {
			g := NewGame()
			for !g.IsOver() {
				c, ok := sel.SelectMove(g.Board(), g.Turn())
				if !ok {
					t.Fatalf("no move selected for %v on a running game", g.Turn())
				}
				if !slices.Contains(g.ValidMoves(), c) {
					t.Fatalf("selected %v, not in %v", c, g.ValidMoves())
				}
				if _, err := g.Place(c); err != nil {
					t.Fatalf("Place(%v) failed: %v", c, err)
				}
			}

			if _, ok := sel.SelectMove(g.Board(), g.Turn()); ok {
				t.Error("selector returned a move on a finished game")
			}
		})
	}
}

func TestFirstSelector(t *testing.T) {
	c, ok := FirstSelector{}.SelectMove(NewBoard(), Dark)
	if !ok || c != C(3, 2) {
		t.Errorf("SelectMove = %v,%v, want (3,2)", c, ok)
	}
}

func TestGreedySelector(t *testing.T) {
	// (0,0) flips one disk, (1,3) flips two.
	b := boardFromRows(t,
		"-ox-----",
		"--------",
		"--------",
		"--oox---",
		"--------",
		"--------",
		"--------",
		"--------",
	)

	c, ok := GreedySelector{}.SelectMove(b, Dark)
	if !ok || c != C(1, 3) {
		t.Errorf("SelectMove = %v,%v, want (1,3)", c, ok)
	}
}

func TestRandomSelectorDeterministic(t *testing.T) {
	play := func(seed int64) []byte {
		g := NewGame()
		sel := NewRandomSelector(seed)
		for !g.IsOver() {
			c, _ := sel.SelectMove(g.Board(), g.Turn())
			g.Place(c)
		}
		return Marshal(g)
	}

	if string(play(99)) != string(play(99)) {
		t.Error("same seed produced different games")
	}
}

func TestSelectorByName(t *testing.T) {
	for _, name := range []string{"", StrategyRandom, StrategyGreedy, StrategyFirst} {
		if _, err := SelectorByName(name, 1); err != nil {
			t.Errorf("SelectorByName(%q) error: %v", name, err)
		}
	}
	if _, err := SelectorByName("minimax", 1); err == nil {
		t.Error("SelectorByName(minimax) should fail")
	}
}
