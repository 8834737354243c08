package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	Play(ctx context.Context, id string, move entity.Move) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
}

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	router      *mux.Router
}

func New(logger *slog.Logger, gameManager gameManager) *Server {
	server := &Server{
		logger:      logger.With("component", "rest"),
		gameManager: gameManager,
		router:      mux.NewRouter(),
	}

	server.router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	api := server.router.PathPrefix("/v0/tictactoe").Subrouter()
	api.HandleFunc("/new", server.handleNewGame).Methods(http.MethodGet)
	api.HandleFunc("/play", server.handlePlay).Methods(http.MethodPost)
	api.HandleFunc("/{id}", server.handleGetGame).Methods(http.MethodGet)

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
