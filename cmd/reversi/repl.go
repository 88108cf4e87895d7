package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/repl"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Play in a line-oriented console",
	Long: `Start a console where each line is a command. Computer sides reply
immediately. Type "help" for the command list.

Examples:
  reversi repl
  reversi repl --dark manual --light computer`,
	Run: runREPL,
}

func init() {
	replCmd.Flags().StringVar(&flagDark, "dark", "", "Dark player: manual or computer")
	replCmd.Flags().StringVar(&flagLight, "light", "", "Light player: manual or computer")
}

func runREPL(cmd *cobra.Command, _ []string) {
	dark, light := appConfig.PlayerTypes()
	dark, light, err := playerFlags(cmd, dark, light)
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	historyDir := filepath.Dir(config.ExpandPath(appConfig.Storage.SavePath))
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		logger.Warn("could not create history directory", "error", err)
	}
	history := filepath.Join(historyDir, "repl_history")
	rl, err := repl.NewReadline(history)
	if err != nil {
		fatalf("starting console: %v", err)
	}
	defer rl.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	strategy := appConfig.Computer.Strategy
	opts := repl.Options{
		Dark:     dark,
		Light:    light,
		Strategy: strategy,
		Seed:     seed,
		OnResult: func(r reversi.Result) {
			if store == nil {
				return
			}
			if _, err := store.SaveResult(storage.NewResultEntry(storage.SourceREPL, strategy, r)); err != nil {
				logger.Warn("could not record result", "error", err)
			}
		},
	}

	if err := repl.Run(rl, os.Stdout, opts); err != nil {
		fatalf("%v", err)
	}
}
