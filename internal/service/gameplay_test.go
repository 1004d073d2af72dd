package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbksba/Top-Cap-Game/internal/apperror"
	"github.com/sbksba/Top-Cap-Game/internal/entity"
)

type fakeGameRepo struct {
	saved   *entity.Game
	saveErr error
}

func (that *fakeGameRepo) Save(_ context.Context, game *entity.Game) error {
	if that.saveErr != nil {
		return that.saveErr
	}
	that.saved = game.Clone()
	return nil
}

func newTestGamePlay(game *entity.Game) (GamePlayService, *fakeGameRepo) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := &fakeGameRepo{}

	return NewGamePlayService(logger, repo, NewBotService(DefaultSearchDepth), game), repo
}

func TestGamePlayService_CurrentGame(t *testing.T) {
	// Given: a live match
	gamePlay, _ := newTestGamePlay(entity.NewGame(6))

	// When: reading the state and mutating the returned snapshot
	snapshot := gamePlay.CurrentGame(context.Background())
	snapshot.Board[0][3] = entity.EmptyCell
	snapshot.Turn = entity.PlayerTwo

	// Then: the live match is unaffected
	fresh := gamePlay.CurrentGame(context.Background())
	assert.Equal(t, entity.PlayerOne, fresh.Board[0][3])
	assert.Equal(t, entity.PlayerOne, fresh.Turn)
}

func TestGamePlayService_MakeMove(t *testing.T) {
	t.Run("Applies a legal move and persists the snapshot", func(t *testing.T) {
		// Given: a fresh match
		gamePlay, repo := newTestGamePlay(entity.NewGame(6))

		// When: P1 makes a legal move
		game, err := gamePlay.MakeMove(context.Background(), entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2})

		// Then: the move took effect and the repo saw the new state
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTwo, game.Turn)
		require.NotNil(t, repo.saved)
		assert.Equal(t, entity.PlayerOne, repo.saved.Board[0][2])
	})

	t.Run("Rejects an illegal move without changing state", func(t *testing.T) {
		gamePlay, repo := newTestGamePlay(entity.NewGame(6))

		_, err := gamePlay.MakeMove(context.Background(), entity.Position{Row: 0, Col: 3}, entity.Position{Row: 3, Col: 3})

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Nil(t, repo.saved)
		assert.Equal(t, entity.PlayerOne, gamePlay.CurrentGame(context.Background()).Turn)
	})

	t.Run("Rejects any move once the game is over", func(t *testing.T) {
		// Given: a finished match
		game := entity.NewGame(6)
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerOne
		gamePlay, _ := newTestGamePlay(game)

		// When/Then: the attempt is refused up front
		_, err := gamePlay.MakeMove(context.Background(), entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2})
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Surfaces a storage failure", func(t *testing.T) {
		gamePlay, repo := newTestGamePlay(entity.NewGame(6))
		repo.saveErr = errors.New("redis is down")

		_, err := gamePlay.MakeMove(context.Background(), entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save game")
	})
}

func TestGamePlayService_MakeBotMove(t *testing.T) {
	t.Run("Rejects when it is not the bot's turn", func(t *testing.T) {
		// Given: a fresh match, P1 to move
		gamePlay, _ := newTestGamePlay(entity.NewGame(6))

		// When/Then: the bot may not move
		_, err := gamePlay.MakeBotMove(context.Background())
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Rejects once the game is over", func(t *testing.T) {
		game := entity.NewGame(6)
		game.Status = entity.StatusFinished
		game.Winner = entity.PlayerTwo
		gamePlay, _ := newTestGamePlay(game)

		_, err := gamePlay.MakeBotMove(context.Background())
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Computes, applies and persists the bot move", func(t *testing.T) {
		// Given: it is the bot's turn
		game := entity.NewGame(6)
		require.NoError(t, game.MakeMove(entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2}))
		gamePlay, repo := newTestGamePlay(game)

		// When: the bot moves
		result, err := gamePlay.MakeBotMove(context.Background())

		// Then: the turn is back with P1 and the state was saved
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerOne, result.Turn)
		require.NotNil(t, repo.saved)
		assert.Equal(t, result.Board, repo.saved.Board)
	})

	t.Run("Errors when the bot has no move anywhere", func(t *testing.T) {
		// Given: a single isolated bot piece and the bot to move
		game := entity.NewGame(6)
		for r := range game.Board {
			for c := range game.Board[r] {
				game.Board[r][c] = entity.EmptyCell
			}
		}
		game.Board[5][2] = entity.PlayerTwo
		game.Board[0][3] = entity.PlayerOne
		game.Turn = entity.PlayerTwo
		gamePlay, _ := newTestGamePlay(game)

		// When/Then: the failure surfaces instead of a bogus move
		_, err := gamePlay.MakeBotMove(context.Background())
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

func TestGamePlayService_Reset(t *testing.T) {
	// Given: a match that has advanced past the initial layout
	gamePlay, repo := newTestGamePlay(entity.NewGame(6))
	_, err := gamePlay.MakeMove(context.Background(), entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2})
	require.NoError(t, err)

	// When: resetting
	game, err := gamePlay.Reset(context.Background())

	// Then: the layout is the exact initial one again, under a new match ID
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame(6).Board, game.Board)
	assert.Equal(t, entity.PlayerOne, game.Turn)
	assert.Equal(t, entity.StatusOngoing, game.Status)
	require.NotNil(t, repo.saved)
	assert.Equal(t, game.ID, repo.saved.ID)
}
