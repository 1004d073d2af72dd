package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sbksba/Top-Cap-Game/internal/config"
	"github.com/sbksba/Top-Cap-Game/internal/entity"
	"github.com/sbksba/Top-Cap-Game/internal/repository"
	"github.com/sbksba/Top-Cap-Game/internal/repository/storage"
	"github.com/sbksba/Top-Cap-Game/internal/service"
	"github.com/sbksba/Top-Cap-Game/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
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

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection)

	game, err := resumeOrCreateGame(ctx, log, gameRepo, conf.Game.BoardSize)
	if err != nil {
		return fmt.Errorf("could not prepare the live game: %w", err)
	}

	botService := service.NewBotService(conf.Game.SearchDepth)
	gamePlayService := service.NewGamePlayService(logger, gameRepo, botService, game)
	handlers := rest.NewHandlers(logger, gamePlayService, game.Size)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, handlers, conf.AssetsDir); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// resumeOrCreateGame - picks up the persisted live match after a restart,
// or builds a fresh one. A snapshot from a different board size is stale
// configuration, not a resumable game.
func resumeOrCreateGame(ctx context.Context, log *slog.Logger, gameRepo repository.GameRepository, boardSize int) (*entity.Game, error) {
	game, err := gameRepo.Load(ctx)
	if err == nil && game.Size == boardSize {
		log.Info("Resuming persisted game", "gameID", game.ID, "status", game.Status)
		return game, nil
	}

	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to load persisted game: %w", err)
	}

	game = entity.NewGame(boardSize)
	if err = gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save new game: %w", err)
	}

	log.Info("Starting a new game", "gameID", game.ID, "boardSize", game.Size)

	return game, nil
}
