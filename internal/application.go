package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gluckgaming/connect4-backend/internal/config"
	"github.com/gluckgaming/connect4-backend/internal/repository"
	"github.com/gluckgaming/connect4-backend/internal/repository/storage"
	"github.com/gluckgaming/connect4-backend/internal/service"
	"github.com/gluckgaming/connect4-backend/transport/rest"
)

var (
	ErrAddrNotFound      = errors.New("redis address string is empty")
	ErrUnknownBackend    = errors.New("unknown storage backend")
	ErrSQLitePathMissing = errors.New("sqlite storage path is empty")
)

// RunApp - wires the storage backend, repository, validator, game service and
// REST server, then serves until a termination signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not set up storage: %w", err)
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	gameService := service.NewGameService(logger, service.NewValidator(), gameRepo)

	server := rest.New(logger, gameService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "backend", conf.Storage.Backend)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	switch conf.Storage.Backend {
	case config.BackendRedis:
		addr := conf.Redis.GetRedisAddr()
		if addr == "" {
			return nil, nil, ErrAddrNotFound
		}

		client, err := storage.NewRedisClient(ctx, addr)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(client), client.Close, nil

	case config.BackendSQLite:
		if conf.Storage.SQLitePath == "" {
			return nil, nil, ErrSQLitePathMissing
		}

		db, err := storage.NewSQLite(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		gameRepo, err := repository.NewSQLiteGameRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return gameRepo, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, conf.Storage.Backend)
	}
}
