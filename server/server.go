package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/store"
	"github.com/ross1116/pokebattlesim/internal/team"
)

// Server hosts player-versus-AI battles over HTTP and websockets.
type Server struct {
	config  Config
	teams   team.Source
	reports store.Repository

	router   *mux.Router
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session
	streams  uint64
}

func New(config *Config, teams team.Source, reports store.Repository) *Server {
	cfg := *config
	if cfg.Depth < 1 {
		cfg.Depth = 1
	}
	if reports == nil {
		reports = store.NewMemory()
	}
	server := &Server{
		config:   cfg,
		teams:    teams,
		reports:  reports,
		router:   mux.NewRouter(),
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	server.setupRoutes()
	return server
}

func (server *Server) setupRoutes() {
	server.router.HandleFunc("/battles", server.handleCreateBattle).Methods(http.MethodPost)
	server.router.HandleFunc("/battles/{id}", server.handleGetBattle).Methods(http.MethodGet)
	server.router.HandleFunc("/battles/{id}/turns", server.handlePlayTurn).Methods(http.MethodPost)
	server.router.HandleFunc("/battles/{id}/report", server.handleGetReport).Methods(http.MethodGet)
	server.router.HandleFunc("/battles/{id}/ws", server.handleWebSocket)
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (server *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(server.config.Host, server.config.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server started")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("server shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// nextRand hands out generators, derived from the configured seed when there is one.
func (server *Server) nextRand() *rand.Rand {
	if server.config.Seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	server.mu.Lock()
	server.streams++
	stream := server.streams
	server.mu.Unlock()
	return rand.New(rand.NewPCG(server.config.Seed, stream))
}

func (server *Server) createSession(ctx context.Context, playerName string) (*session, error) {
	if playerName == "" {
		playerName = "Player"
	}
	player, opp, err := server.teams.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("build teams: %w", err)
	}
	s, err := newSession(uuid.NewString(), playerName, player, opp, &server.config, server.nextRand(), server.nextRand())
	if err != nil {
		return nil, err
	}

	server.mu.Lock()
	server.sessions[s.id] = s
	server.mu.Unlock()
	log.Info().Str("battle", s.id).Str("player", playerName).Msg("battle created")
	return s, nil
}

func (server *Server) session(id string) (*session, error) {
	server.mu.RLock()
	defer server.mu.RUnlock()
	s, ok := server.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBattle, id)
	}
	return s, nil
}

// saveReport persists a finished battle once. Failures are logged, not returned to the player.
func (server *Server) saveReport(ctx context.Context, s *session) {
	report, ok := s.report()
	if !ok {
		return
	}
	if err := server.reports.Create(ctx, report); err != nil {
		log.Error().Err(err).Str("battle", s.id).Msg("failed to save battle report")
		return
	}
	log.Info().Str("battle", s.id).Str("winner", report.Winner).Int("turns", report.Turns).Msg("battle finished")
}

func (server *Server) SendResponse(conn *websocket.Conn, response Response) error {
	if conn == nil {
		return fmt.Errorf("send %s: nil connection", response.Type)
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	defer conn.SetWriteDeadline(time.Time{})
	if err := conn.WriteJSON(response); err != nil {
		log.Warn().Err(err).Str("type", response.Type).Str("remote", conn.RemoteAddr().String()).Msg("failed to send response")
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownBattle), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBattleOver):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidAction), errors.Is(err, errMalformedInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
