package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/endless"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagPlayer string
	flagMute   bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a runner variant",
	Long: `Start playing the given variant (runner when omitted).

Controls:
  Space/Up/W  - Jump (starts the run)
  Left click  - Tap (runner_touch)
  P           - Pause
  R           - Restart after game over
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  runner play
  runner play runner_plus
  runner play runner_touch --mute
  runner play --config ./runner.toml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with your scores")
		c.Flags().BoolVar(&flagMute, "mute", false, "Silence the terminal bell")
	}
}

// localRuntime sizes the game to the current terminal.
func localRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if !flagMute {
		cfg.Bell = os.Stdout
	}
	return cfg
}

// openStore opens the score database, or returns nil with a warning so
// the game still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "runner"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger("runner")
	endless.SetLogger(logger)

	store := openStore()
	runErr := tui.Run(game, localRuntime(), tui.Options{
		Store:  store,
		Player: flagPlayer,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
