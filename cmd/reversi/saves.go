package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/config"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

var flagSavesLimit int

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage games saved in the database",
	Long: `Copy games between save files and the database.

Examples:
  reversi saves list
  reversi saves import game.txt opening
  reversi saves export 3f1c... game.txt
  reversi saves update 3f1c... game.txt
  reversi saves delete 3f1c...`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved games",
	Args:  cobra.NoArgs,
	Run:   runSavesList,
}

var savesImportCmd = &cobra.Command{
	Use:   "import <file> [name]",
	Short: "Store a save file in the database",
	Args:  cobra.RangeArgs(1, 2),
	Run:   runSavesImport,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write a saved game to a file (\"-\" for stdout)",
	Args:  cobra.ExactArgs(2),
	Run:   runSavesExport,
}

var savesUpdateCmd = &cobra.Command{
	Use:   "update <id> <file>",
	Short: "Replace a saved game with a save file",
	Args:  cobra.ExactArgs(2),
	Run:   runSavesUpdate,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesListCmd.Flags().IntVar(&flagSavesLimit, "limit", 20, "Number of saved games to show")

	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesImportCmd)
	savesCmd.AddCommand(savesExportCmd)
	savesCmd.AddCommand(savesUpdateCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSavesList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	games, err := store.ListGames(flagSavesLimit)
	if err != nil {
		fatalf("listing saved games: %v", err)
	}
	if len(games) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-36s  %-20s  %-16s  %s\n", "ID", "Name", "Updated", "Status")
	fmt.Printf("  %-36s  %-20s  %-16s  %s\n", "--", "----", "-------", "------")
	for _, sg := range games {
		status := "corrupted"
		if g, err := reversi.Unmarshal([]byte(sg.State)); err == nil {
			status = g.Status()
		}
		fmt.Printf("  %-36s  %-20s  %-16s  %s\n", sg.ID, sg.Name, sg.UpdatedAt.Format("2006-01-02 15:04"), status)
	}
}

func runSavesImport(_ *cobra.Command, args []string) {
	path := config.ExpandPath(args[0])
	g, err := reversi.LoadFile(path)
	if err != nil {
		fatalf("%v", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(args) == 2 {
		name = args[1]
	}

	store := openStore()
	defer store.Close()

	saved, err := store.SaveGame(name, g)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Imported %s as %s\n", args[0], saved.ID)
}

func runSavesExport(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	g, _, err := store.LoadGame(args[0])
	if err != nil {
		fatalf("%v", describeStoreError(args[0], err))
	}

	if args[1] == "-" {
		if err := reversi.Write(os.Stdout, g); err != nil {
			fatalf("%v", err)
		}
		return
	}
	if err := reversi.SaveFile(config.ExpandPath(args[1]), g); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Exported %s to %s\n", args[0], args[1])
}

func runSavesUpdate(_ *cobra.Command, args []string) {
	g, err := reversi.LoadFile(config.ExpandPath(args[1]))
	if err != nil {
		fatalf("%v", err)
	}

	store := openStore()
	defer store.Close()

	if err := store.UpdateGame(args[0], g); err != nil {
		fatalf("%v", describeStoreError(args[0], err))
	}
	fmt.Printf("Updated %s\n", args[0])
}

func runSavesDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteGame(args[0]); err != nil {
		fatalf("%v", describeStoreError(args[0], err))
	}
	fmt.Printf("Deleted %s\n", args[0])
}

func describeStoreError(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no saved game with id %s", id)
	}
	return err
}
