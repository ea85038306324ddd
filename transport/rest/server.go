package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	router *chi.Mux
}

func New(logger *slog.Logger, games gameService) *Server {
	h := newHandlers(logger, games)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	router.Get("/ping", h.ping)

	router.Route("/games", func(r chi.Router) {
		r.Post("/create", h.createGame)
		r.Get("/{id}", h.getGameData)
		r.Put("/play", h.playTurn)
		r.Put("/suspend/{id}", h.suspendGame)
		r.Put("/resume/{id}", h.resumeGame)
		r.Put("/complete/{id}", h.completeGame)
		r.Put("/draw/{id}", h.drawGame)
		r.Put("/abandon/{id}", h.abandonGame)
		r.Delete("/delete/{id}", h.deleteGame)
	})

	return &Server{
		logger: logger,
		router: router,
	}
}

// Start serves HTTP on the given port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
