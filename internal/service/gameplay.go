package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sbksba/Top-Cap-Game/internal/apperror"
	"github.com/sbksba/Top-Cap-Game/internal/entity"
)

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

// GamePlayService owns the single live match. Every operation takes the
// match lock for its whole duration, so callers always observe a consistent
// game and at most one mutation is in flight.
type GamePlayService interface {
	CurrentGame(ctx context.Context) *entity.Game
	MakeMove(ctx context.Context, from, to entity.Position) (*entity.Game, error)
	MakeBotMove(ctx context.Context) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	mu   sync.Mutex
	game *entity.Game

	gameRepo   gameRepo
	botService BotService
	boardSize  int
}

func NewGamePlayService(logger *slog.Logger, gameRepo gameRepo, botService BotService, game *entity.Game) GamePlayService {
	return &gamePlayService{
		logger:     logger,
		game:       game,
		gameRepo:   gameRepo,
		botService: botService,
		boardSize:  game.Size,
	}
}

// CurrentGame - a snapshot of the live match; callers get a clone and can
// never reach into the locked state.
func (that *gamePlayService) CurrentGame(_ context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Clone()
}

// MakeMove - applies a human move to the live match and persists the
// resulting snapshot.
func (that *gamePlayService) MakeMove(ctx context.Context, from, to entity.Position) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if err := that.game.MakeMove(from, to); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err := that.gameRepo.Save(ctx, that.game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return that.game.Clone(), nil
}

// MakeBotMove - lets the bot compute and apply its move. The search runs on
// clones, so holding the lock across it only serializes requests; nothing
// blocks inside.
func (that *gamePlayService) MakeBotMove(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "MakeBotMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if that.game.Turn != BotMark {
		return nil, apperror.ErrNotYourTurn
	}

	from, to, err := that.botService.FindBestMove(that.game)
	if err != nil {
		return nil, fmt.Errorf("bot failed to find a move: %w", err)
	}

	if err = that.game.MakeMove(from, to); err != nil {
		// The search only proposes validated moves, so this is a bug.
		log.Error("bot move rejected by the engine", "error", err, "from", from, "to", to)
		return nil, fmt.Errorf("bot made an invalid move: %w", err)
	}

	if err = that.gameRepo.Save(ctx, that.game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return that.game.Clone(), nil
}

// Reset - replaces the live match wholesale with a freshly constructed one.
func (that *gamePlayService) Reset(ctx context.Context) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game = entity.NewGame(that.boardSize)

	if err := that.gameRepo.Save(ctx, that.game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return that.game.Clone(), nil
}
