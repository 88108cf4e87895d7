package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saved, err := store.SaveGame("persisted", reversi.NewGame())
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, _, err := store.LoadGame(saved.ID); err != nil {
		t.Errorf("LoadGame() after reopen failed: %v", err)
	}
}

func TestSaveAndLoadGame(t *testing.T) {
	store := openTestStore(t)

	g := reversi.NewGameWithPlayers(reversi.Manual, reversi.Computer)
	if _, err := g.Place(reversi.C(2, 3)); err != nil {
		t.Fatal(err)
	}

	saved, err := store.SaveGame("opening", g)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if saved.ID == "" || saved.Name != "opening" {
		t.Errorf("saved = %+v, want id and name opening", saved)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	loaded, meta, err := store.LoadGame(saved.ID)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if !loaded.Equal(g) {
		t.Errorf("loaded game differs:\n%s", reversi.Marshal(loaded))
	}
	if meta.State != string(reversi.Marshal(g)) {
		t.Errorf("State = %q, want save format", meta.State)
	}
}

func TestUpdateGame(t *testing.T) {
	store := openTestStore(t)

	g := reversi.NewGame()
	saved, err := store.SaveGame("", g)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if saved.Name != "untitled" {
		t.Errorf("Name = %q, want untitled", saved.Name)
	}

	g.Place(reversi.C(2, 3))
	if err := store.UpdateGame(saved.ID, g); err != nil {
		t.Fatalf("UpdateGame() failed: %v", err)
	}

	loaded, _, err := store.LoadGame(saved.ID)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if loaded.Turn() != reversi.Light {
		t.Errorf("Turn() = %v, want light after update", loaded.Turn())
	}

	if err := store.UpdateGame("missing", g); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateGame(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListAndDeleteGames(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"one", "two", "three"} {
		if _, err := store.SaveGame(name, reversi.NewGame()); err != nil {
			t.Fatalf("SaveGame(%s) failed: %v", name, err)
		}
	}

	games, err := store.ListGames(10)
	if err != nil {
		t.Fatalf("ListGames() failed: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("ListGames() returned %d games, want 3", len(games))
	}

	limited, err := store.ListGames(2)
	if err != nil {
		t.Fatalf("ListGames(2) failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListGames(2) returned %d games, want 2", len(limited))
	}

	if err := store.DeleteGame(games[0].ID); err != nil {
		t.Fatalf("DeleteGame() failed: %v", err)
	}
	if err := store.DeleteGame(games[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteGame() error = %v, want ErrNotFound", err)
	}
	if _, _, err := store.LoadGame(games[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGame() of deleted game error = %v, want ErrNotFound", err)
	}

	remaining, _ := store.ListGames(10)
	if len(remaining) != 2 {
		t.Errorf("ListGames() after delete returned %d games, want 2", len(remaining))
	}
}

func TestLoadCorruptedGame(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveGame("broken", reversi.NewGame())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("UPDATE saved_games SET state = ? WHERE id = ?", "x00\n--------\n", saved.ID); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.LoadGame(saved.ID); !errors.Is(err, reversi.ErrParse) {
		t.Errorf("LoadGame() error = %v, want reversi.ErrParse", err)
	}
}

func TestResults(t *testing.T) {
	store := openTestStore(t)

	entries := []ResultEntry{
		{Source: SourceAuto, DarkPlayer: "computer", LightPlayer: "computer", DarkCount: 40, LightCount: 24, Winner: "dark", Strategy: "random"},
		{Source: SourceAuto, DarkPlayer: "computer", LightPlayer: "computer", DarkCount: 20, LightCount: 44, Winner: "light", Strategy: "random"},
		{Source: SourceAuto, DarkPlayer: "computer", LightPlayer: "computer", DarkCount: 32, LightCount: 32, Winner: "tie", Strategy: "random"},
		{Source: SourceTUI, DarkPlayer: "manual", LightPlayer: "manual", DarkCount: 50, LightCount: 14, Winner: "dark"},
	}
	for _, e := range entries {
		if _, err := store.SaveResult(e); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 4 {
		t.Fatalf("RecentResults() returned %d, want 4", len(recent))
	}
	if recent[0].Source != SourceTUI {
		t.Errorf("newest result source = %q, want %q", recent[0].Source, SourceTUI)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Stats() returned %d groups, want 2", len(stats))
	}

	auto := stats[0]
	if auto.Source != SourceAuto || auto.Strategy != "random" {
		t.Fatalf("first group = %s/%s, want auto/random", auto.Source, auto.Strategy)
	}
	if auto.Games != 3 || auto.DarkWins != 1 || auto.LightWins != 1 || auto.Ties != 1 {
		t.Errorf("auto stats = %+v, want 3 games with one of each outcome", auto)
	}
	if auto.AvgDark != 92.0/3 {
		t.Errorf("AvgDark = %v, want %v", auto.AvgDark, 92.0/3)
	}
}

func TestNewResultEntry(t *testing.T) {
	r := reversi.Result{
		DarkPlayer:  reversi.Manual,
		LightPlayer: reversi.Manual,
		DarkCount:   10,
		LightCount:  54,
		Winner:      reversi.Light,
	}

	e := NewResultEntry(SourceREPL, "greedy", r)
	if e.Strategy != "" {
		t.Errorf("Strategy = %q, want empty when no side is computer", e.Strategy)
	}
	if e.Winner != "light" || e.DarkPlayer != "manual" {
		t.Errorf("entry = %+v, want light win by manual players", e)
	}

	r.LightPlayer = reversi.Computer
	if e := NewResultEntry(SourceREPL, "greedy", r); e.Strategy != "greedy" {
		t.Errorf("Strategy = %q, want greedy", e.Strategy)
	}
}

func TestSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:  "m-1",
		Strategy: "first",
		Result: reversi.Result{
			DarkPlayer:  reversi.Computer,
			LightPlayer: reversi.Manual,
			DarkCount:   33,
			LightCount:  31,
			Winner:      reversi.Dark,
		},
	})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	recent, _ := store.RecentResults(1)
	if len(recent) != 1 || recent[0].Source != SourceAPI || recent[0].Strategy != "first" {
		t.Errorf("recent = %+v, want one api result with strategy first", recent)
	}
}
