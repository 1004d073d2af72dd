package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbksba/Top-Cap-Game/internal/entity"
	"github.com/sbksba/Top-Cap-Game/testing/suite"
)

func TestGameRepository_SaveAndLoad(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a live match that has advanced one move
	game := entity.NewGame(6)
	require.NoError(t, game.MakeMove(entity.Position{Row: 0, Col: 3}, entity.Position{Row: 0, Col: 2}))

	// When: saving and loading it back
	require.NoError(t, gameRepo.Save(ctx, game))

	loaded, err := gameRepo.Load(ctx)

	// Then: the snapshot round-trips intact
	require.NoError(t, err)
	assert.Equal(t, game.ID, loaded.ID)
	assert.Equal(t, game.Board, loaded.Board)
	assert.Equal(t, game.Turn, loaded.Turn)
	assert.Equal(t, game.Status, loaded.Status)
}

func TestGameRepository_Load_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// When: loading with nothing persisted
	_, err := gameRepo.Load(ctx)

	// Then: ErrGameNotFound is returned
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a persisted match
	game := entity.NewGame(6)
	require.NoError(t, gameRepo.Save(ctx, game))

	// When: deleting it
	require.NoError(t, gameRepo.Delete(ctx))

	// Then: a subsequent load finds nothing
	_, err := gameRepo.Load(ctx)
	require.ErrorIs(t, err, ErrGameNotFound)
}
