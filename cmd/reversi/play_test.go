package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
)

func playFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "play"}
	cmd.Flags().StringVar(&flagDark, "dark", "", "")
	cmd.Flags().StringVar(&flagLight, "light", "", "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return cmd
}

func withTestGlobals(t *testing.T) {
	t.Helper()
	prevLogger, prevConfig, prevLoad := logger, appConfig, flagLoad
	logger = log.New(io.Discard)
	appConfig = config.DefaultConfig()
	flagLoad = ""
	t.Cleanup(func() {
		logger, appConfig, flagLoad = prevLogger, prevConfig, prevLoad
	})
}

func savedGame(t *testing.T, dir string) (*reversi.Game, string) {
	t.Helper()
	g := reversi.NewGameWithPlayers(reversi.Manual, reversi.Computer)
	if _, err := g.Place(reversi.C(2, 3)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	path := filepath.Join(dir, "game.txt")
	if err := reversi.SaveFile(path, g); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	return g, path
}

func TestStartingGame(t *testing.T) {
	withTestGlobals(t)
	dir := t.TempDir()
	saved, path := savedGame(t, dir)

	broken := filepath.Join(dir, "broken.txt")
	if err := os.WriteFile(broken, []byte("?00\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if g := startingGame(true, path); g == nil || !g.Equal(saved) {
		t.Error("resume did not restore the saved game")
	}
	if g := startingGame(false, path); g != nil {
		t.Error("starting fresh still loaded the save file")
	}
	if g := startingGame(true, ""); g != nil {
		t.Error("empty save path loaded a game")
	}
	if g := startingGame(true, filepath.Join(dir, "absent.txt")); g != nil {
		t.Error("missing save file should start a new game")
	}
	if g := startingGame(true, broken); g != nil {
		t.Error("malformed save file should start a new game")
	}

	flagLoad = path
	if g := startingGame(false, ""); g == nil || !g.Equal(saved) {
		t.Error("--load did not restore the named file")
	}
	flagLoad = broken
	if g := startingGame(false, ""); g != nil {
		t.Error("malformed --load file should start a new game")
	}
}

func TestChoosePlayers(t *testing.T) {
	withTestGlobals(t)
	appConfig.Players.Dark = "computer"
	saved, _ := savedGame(t, t.TempDir())

	tests := []struct {
		name        string
		args        []string
		loaded      *reversi.Game
		modeID      string
		hasMode     bool
		dark, light reversi.PlayerType
	}{
		{"loaded keeps saved players", nil, saved, "reversi", false, reversi.Manual, reversi.Computer},
		{"loaded keeps unflagged side", []string{"--dark", "computer"}, saved, "reversi", false, reversi.Computer, reversi.Computer},
		{"loaded flag overrides", []string{"--light", "manual"}, saved, "reversi", false, reversi.Manual, reversi.Manual},
		{"mode players", nil, nil, "reversi_cpu", true, reversi.Manual, reversi.Computer},
		{"mode with flag", []string{"--dark", "computer"}, nil, "reversi_cpu", true, reversi.Computer, reversi.Computer},
		{"config players", nil, nil, "reversi", false, reversi.Computer, reversi.Manual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := playFlags(t, tt.args...)
			dark, light, err := choosePlayers(cmd, tt.loaded, tt.modeID, tt.hasMode)
			if err != nil {
				t.Fatalf("choosePlayers failed: %v", err)
			}
			if dark != tt.dark || light != tt.light {
				t.Errorf("players = %v,%v, want %v,%v", dark, light, tt.dark, tt.light)
			}
		})
	}

	if _, _, err := choosePlayers(playFlags(t, "--light", "robot"), nil, "reversi", false); err == nil {
		t.Error("invalid --light value accepted")
	}
}
