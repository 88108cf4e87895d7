package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/platform/tui"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var (
	flagDark  string
	flagLight string
	flagLoad  string
	flagSave  string
	flagNew   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Reversi in the terminal",
	Long: `Start a game in the given mode (default: reversi).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Enter/Space       - Place a disk
  1 / 2             - Switch dark / light between manual and computer
  Ctrl+S            - Save to the save file
  P                 - Pause
  R                 - New game
  F2                - Screenshot
  Q/Ctrl+C          - Quit

The game is saved after every move, player change and new game. Without a
mode, play resumes the saved game; a missing or malformed save starts a new
one with the config's players. --dark and --light override either.

Examples:
  reversi play
  reversi play --new
  reversi play reversi_cpu
  reversi play --dark computer --light computer
  reversi play --load game.txt --save game.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDark, "dark", "", "Dark player: manual or computer")
	playCmd.Flags().StringVar(&flagLight, "light", "", "Light player: manual or computer")
	playCmd.Flags().StringVar(&flagLoad, "load", "", "Start from a save file")
	playCmd.Flags().StringVar(&flagSave, "save", "", "Save file (default from config)")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Start a new game instead of resuming")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := string(reversi.ModeHuman)
	if len(args) == 1 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'reversi list' to see available modes.")
		os.Exit(1)
	}

	settings := appConfig.SessionSettings()
	if flagSave != "" {
		settings.SavePath = config.ExpandPath(flagSave)
		reversi.Configure(settings)
	}

	loaded := startingGame(len(args) == 0 && !flagNew, settings.SavePath)

	dark, light, err := choosePlayers(cmd, loaded, modeID, len(args) == 1)
	if err != nil {
		fatalf("%v", err)
	}
	if loaded != nil {
		reversi.LoadNext(loaded)
	}
	reversi.SetPlayers(dark, light)

	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fatalf("%v", err)
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		fatalf("%v", err)
	}
}

// startingGame returns the game to continue, or nil for a new one. --load
// always applies; otherwise the save file is resumed when resume is set.
func startingGame(resume bool, savePath string) *reversi.Game {
	path := ""
	switch {
	case flagLoad != "":
		path = config.ExpandPath(flagLoad)
	case resume && savePath != "":
		path = savePath
	default:
		return nil
	}

	g, restored, err := reversi.LoadOrNew(path)
	switch {
	case errors.Is(err, reversi.ErrParse):
		logger.Warn("save file is malformed, starting a new game", "path", path, "error", err)
		return nil
	case err != nil:
		fatalf("loading %s: %v", path, err)
	case !restored && flagLoad != "":
		fatalf("loading %s: file does not exist", path)
	case !restored:
		return nil
	}
	return g
}

// choosePlayers starts from the loaded game's players, else the named mode's,
// else the config's, and applies --dark and --light on top.
func choosePlayers(cmd *cobra.Command, loaded *reversi.Game, modeID string, hasMode bool) (reversi.PlayerType, reversi.PlayerType, error) {
	var dark, light reversi.PlayerType
	switch {
	case loaded != nil:
		dark, light = loaded.Player(reversi.Dark), loaded.Player(reversi.Light)
	case hasMode:
		g := reversi.NewSession(reversi.Mode(modeID)).Game()
		dark, light = g.Player(reversi.Dark), g.Player(reversi.Light)
	default:
		dark, light = appConfig.PlayerTypes()
	}
	return playerFlags(cmd, dark, light)
}

// playerFlags applies --dark and --light over the given players.
func playerFlags(cmd *cobra.Command, dark, light reversi.PlayerType) (reversi.PlayerType, reversi.PlayerType, error) {
	var err error
	if cmd.Flags().Changed("dark") {
		if dark, err = reversi.ParsePlayerType(flagDark); err != nil {
			return dark, light, fmt.Errorf("--dark: %w", err)
		}
	}
	if cmd.Flags().Changed("light") {
		if light, err = reversi.ParsePlayerType(flagLight); err != nil {
			return dark, light, fmt.Errorf("--light: %w", err)
		}
	}
	return dark, light, nil
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
