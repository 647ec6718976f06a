package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// Server serves the spectator feed and the score API.
type Server struct {
	addr   string
	r      *chi.Mux
	hub    *Hub
	scores ScoreSource
	logger *log.Logger
}

// NewServer wires the router. scores may be nil, in which case the score
// endpoints answer 503.
func NewServer(addr string, hub *Hub, scores ScoreSource, logger *log.Logger) *Server {
	s := &Server{addr: addr, r: chi.NewRouter(), hub: hub, scores: scores, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.logRequests)

	// Upgraded connections outlive any handler timeout.
	s.r.Get("/ws", hub.ServeWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", s.handleHealth)
		r.Get("/api/games", s.handleGames)
		r.Get("/api/scores/{game}", s.handleScores)
		r.Get("/api/stats", s.handleStats)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting spectator server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping spectator server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true, "spectators": s.hub.Clients()})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, registry.List())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_unavailable")
		return
	}

	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		writeError(w, http.StatusNotFound, "unknown_game")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	entries, err := s.scores.TopScores(gameID, limit)
	if err != nil {
		s.logger.Error("Failed to load scores", "game", gameID, "err", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	writeJSON(w, entries)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.scores == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_unavailable")
		return
	}

	stats, err := s.scores.GetAllGamesStats()
	if err != nil {
		s.logger.Error("Failed to load stats", "err", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, stats)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
