package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/games/endless"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/spectate"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagNoBell      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the runner SSH server",
	Long: `Start an SSH server that lets anyone play the runner remotely.

Each SSH connection gets its own session with the variant menu; the SSH
user name is recorded with the scores. All players share one leaderboard.

With --http, live runs are streamed to spectators over WebSocket at /ws
and the leaderboard is served as JSON:

  GET /health
  GET /api/games
  GET /api/scores/{variant}?limit=N
  GET /api/stats

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.runner/host_key

Examples:
  runner serve                    # SSH on :23234, no spectator feed
  runner serve --ssh :2222        # Listen on port 2222
  runner serve --http :8080       # Also serve spectators on :8080
  runner serve --db ./scores.db   # Use a specific database

Players connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Spectator HTTP address (host:port); empty disables it")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoBell, "no-bell", false, "Do not forward game sounds to players")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "runner-ssh")
	endless.SetLogger(logger.WithPrefix("runner"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	var feed tui.Publisher
	httpDone := make(chan error, 1)
	if flagHTTPAddr != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		go hub.Run(ctx)
		feed = hub

		var scores spectate.ScoreSource
		if store != nil {
			scores = store
		}
		httpServer := spectate.NewServer(flagHTTPAddr, hub, scores, logger.WithPrefix("spectate"))
		go func() { httpDone <- httpServer.ListenAndServe(ctx) }()
	} else {
		close(httpDone)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Bell = !flagNoBell

	server, err := tui.NewSSHServer(cfg, store, feed, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting runner SSH server on %s\n", server.Addr())
	if flagHTTPAddr != "" {
		fmt.Printf("Spectators: http://%s/ws\n", flagHTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	sshErr := server.ListenAndServe(ctx)
	stop()

	if err := <-httpDone; err != nil {
		logger.Error("Spectator server error", "err", err)
	}
	if sshErr != nil {
		logger.Error("SSH server error", "err", sshErr)
		os.Exit(1)
	}
}
