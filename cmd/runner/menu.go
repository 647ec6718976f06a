package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/games/endless"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a runner variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play and Tab for the
scoreboard. After a run ends, press B or Esc to return to the menu.

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger("runner")
	defer closeLog()
	endless.SetLogger(logger)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	err := tui.RunSession(localRuntime(), tui.Options{
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
