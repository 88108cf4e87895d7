// reversi plays Reversi (Othello) in the terminal, over SSH, over HTTP and in
// a line-oriented console.
//
// Usage:
//
//	reversi list                 - List play modes
//	reversi play [mode]          - Play in the terminal
//	reversi menu                 - Pick modes from a menu
//	reversi show [file]          - Print a saved position
//	reversi moves [file]         - Print the valid moves of a saved position
//	reversi auto                 - Play computer-vs-computer games headless
//	reversi results              - Show recorded results and stats
//	reversi saves <subcommand>   - Manage games saved in the database
//	reversi serve                - Start the SSH server
//	reversi api                  - Start the HTTP API
//	reversi repl                 - Start the line console
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 30)
//	--seed <value>       - RNG seed for computer players
//	--db <path>          - Database path (default: from config)
//	--config <path>      - Config file (default: search path)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reversi",
	Short: "Reversi - play Othello in your terminal",
	Long: `Reversi is the classic two-player disk-flipping game for the terminal.
Each side can be played by a human or by the computer.

Available commands:
  list     - Show play modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  show     - Print a saved position
  moves    - Print valid moves of a saved position
  auto     - Run headless computer games
  results  - View recorded results
  saves    - Manage saved games
  serve    - Start SSH server for remote play
  api      - Start the HTTP API
  repl     - Start the line console

Examples:
  reversi play reversi_cpu
  reversi play --dark computer --light computer
  reversi menu
  reversi auto --games 100 --strategy greedy
  reversi serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to reversi.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(movesCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(replCmd)
}

// setup loads the config and logger shared by every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "reversi",
		Level:           level,
	})

	appConfig, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	reversi.Configure(appConfig.SessionSettings())
	logger.Debug("config loaded", "strategy", appConfig.Computer.Strategy, "delay", appConfig.Computer.Delay)
	return nil
}

// dbPath returns the --db flag or the configured database path.
func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return appConfig.Storage.DBPath
}

// openStore opens the database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(dbPath())
	if err != nil {
		fatalf("opening database: %v", err)
	}
	return store
}

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
