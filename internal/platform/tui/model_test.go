package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

// stubGame finishes after a fixed number of steps.
type stubGame struct {
	steps    int
	finishAt int
	resets   int
	taken    bool
	lastIn   core.InputFrame
}

func (g *stubGame) ID() string {
	return "stub"
}

func (g *stubGame) Title() string {
	return "Stub"
}

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) Strategy() string {
	return reversi.StrategyGreedy
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *stubGame) State() core.GameState {
	return core.GameState{GameOver: g.steps >= g.finishAt}
}

func (g *stubGame) TakeResult() (reversi.Result, bool) {
	if g.steps < g.finishAt || g.taken {
		return reversi.Result{}, false
	}
	g.taken = true
	return reversi.Result{
		DarkPlayer:  reversi.Manual,
		LightPlayer: reversi.Computer,
		DarkCount:   40,
		LightCount:  24,
		Winner:      reversi.Dark,
	}, true
}

var _ registry.Game = (*stubGame)(nil)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func tick(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	return next
}

func TestModelRecordsResultOnce(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{finishAt: 2}

	var m tea.Model = NewModel(game, store, testConfig())
	for range 5 {
		m = tick(t, m)
	}

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Source != storage.SourceTUI || r.Winner != "dark" || r.DarkCount != 40 || r.Strategy != reversi.StrategyGreedy {
		t.Errorf("result = %+v", r)
	}
}

func TestModelPassesKeysToNextTick(t *testing.T) {
	game := &stubGame{finishAt: 100}
	var m tea.Model = NewModel(game, nil, testConfig())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(runeKey('1'))
	m = tick(t, m)

	if !game.lastIn.Has(core.ActionLeft) || !game.lastIn.Has(core.ActionToggleDark) {
		t.Errorf("step input = %v, want Left and ToggleDark", game.lastIn.Actions)
	}

	m = tick(t, m)
	if len(game.lastIn.Actions) != 0 {
		t.Errorf("input not cleared between ticks: %v", game.lastIn.Actions)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{finishAt: 100}
	var m tea.Model = NewModel(game, nil, testConfig())
	m.Init()
	m = tick(t, m)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resets != 1 || game.steps != 1 {
		t.Errorf("resize reset the game: resets=%d steps=%d", game.resets, game.steps)
	}
	if !strings.HasPrefix(m.View(), "stub") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModelQuit(t *testing.T) {
	var m tea.Model = NewModel(&stubGame{finishAt: 100}, nil, testConfig())
	m, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelPlaysReversiSession(t *testing.T) {
	store := openTestStore(t)
	game, err := registry.Create(string(reversi.ModeHuman))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	var m tea.Model = NewModel(game, store, testConfig())
	m.Init()

	// Cursor starts on d4; c4 is a legal opening for dark.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	if got := game.State().Status; got != "Light to move" {
		t.Errorf("Status = %q, want %q", got, "Light to move")
	}
	if !strings.Contains(m.View(), "R E V E R S I") {
		t.Error("View() missing title")
	}
}
