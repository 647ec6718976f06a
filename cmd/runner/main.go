// runner is an endless runner for the terminal.
//
// Usage:
//
//	runner list              - List the runner variants
//	runner play [variant]    - Play a variant (default: runner)
//	runner menu              - Pick variants interactively
//	runner serve             - Serve the game over SSH with a spectator feed
//	runner scores <variant>  - Show high scores for a variant
//	runner config [variant]  - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.runner/scores.db)
//	--config <path>    - Load a YAML or TOML config file
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/games/endless"
)

var (
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Runner - an endless runner in your terminal",
	Long: `Runner is an endless runner for the terminal: jump the blocks for as
long as you can.

Available commands:
  list     - Show the runner variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start the SSH server and spectator feed
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  runner play
  runner play runner_plus --config ./runner.toml
  runner menu
  runner serve --ssh :2222 --http :8080
  runner scores runner`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		endless.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a runner config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger writing to w with the global level applied.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to --log-file, or nowhere when it is unset. The terminal
// belongs to the game while it runs. The returned func closes the file.
func fileLogger(prefix string) (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard, prefix), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard, prefix), func() {}
	}
	return newLogger(f, prefix), func() { f.Close() }
}
