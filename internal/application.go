package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-api/internal/config"
	"github.com/rocketscienceinc/tictactoe-api/internal/entity"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository"
	"github.com/rocketscienceinc/tictactoe-api/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-api/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-api/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-api/transport/rest"
	"github.com/rocketscienceinc/tictactoe-api/transport/websocket"
)

// RunApp - runs the application.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameRepo, closeStorage, err := OpenGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	hub := websocket.NewHub(logger)
	gameManager := usecase.NewGameManager(logger, gameRepo, hub)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameManager, hub).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// OpenGameRepository - connects the storage selected in conf. The returned func releases it.
func OpenGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	switch conf.Storage {
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		closeFn := func() {
			if err := sqliteStorage.Close(); err != nil {
				log.Error("could not close sqlite storage", "error", err)
			}
		}

		return repository.NewSQLiteGameRepository(sqliteStorage.Connection), closeFn, nil
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		closeFn := func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(redisStorage.Connection), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorage, conf.Storage)
	}
}

// RenderGame - writes the stored board of game id and its status to out.
func RenderGame(ctx context.Context, logger *slog.Logger, conf *config.Config, id string, out io.Writer) error {
	gameRepo, closeStorage, err := OpenGameRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	game, err := usecase.NewGameManager(logger, gameRepo, nil).GetGame(ctx, id)
	if err != nil {
		return err
	}

	return writeGame(out, game)
}

func writeGame(out io.Writer, game *entity.Game) error {
	status := "Next: " + game.NextPlayerDescription()
	if game.Ended {
		status = "The winner is: " + tictactoe.WinnerName(game.Board)
	}

	if _, err := fmt.Fprintf(out, "Game %s%s\n%s\n", game.ID, game.Board.Render(), status); err != nil {
		return fmt.Errorf("failed to write game: %w", err)
	}

	return nil
}
