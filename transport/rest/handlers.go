package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sbksba/Top-Cap-Game/internal/apperror"
	"github.com/sbksba/Top-Cap-Game/internal/entity"
)

type gamePlay interface {
	CurrentGame(ctx context.Context) *entity.Game
	MakeMove(ctx context.Context, from, to entity.Position) (*entity.Game, error)
	MakeBotMove(ctx context.Context) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
}

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetConfig(w http.ResponseWriter, r *http.Request)
	GetBoard(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	MakeBotMove(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger    *slog.Logger
	gamePlay  gamePlay
	validate  *validator.Validate
	boardSize int
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlay, boardSize int) Handlers {
	return &handlers{
		logger:    logger,
		gamePlay:  gamePlay,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		boardSize: boardSize,
	}
}

type positionPayload struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

// moveRequest - the payload a client sends to make a move.
type moveRequest struct {
	From positionPayload `json:"from"`
	To   positionPayload `json:"to"`
}

type configResponse struct {
	BoardSize int `json:"board_size"`
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) GetConfig(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, configResponse{BoardSize: that.boardSize})
}

// GetBoard - returns the full snapshot of the live match.
func (that *handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	game := that.gamePlay.CurrentGame(r.Context())
	that.writeJSON(w, game)
}

// MakeMove - applies a human move; a rejected attempt never changes the
// board.
func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MakeMove")

	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := that.validatePayload(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from := entity.Position{Row: payload.From.Row, Col: payload.From.Col}
	to := entity.Position{Row: payload.To.Row, Col: payload.To.Col}

	if _, err := that.gamePlay.MakeMove(r.Context(), from, to); err != nil {
		log.Error("move failed", "error", err, "from", from, "to", to)
		that.writeGameError(w, err)
		return
	}

	log.Info("move successful", "from", from, "to", to)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Move accepted."))
}

// MakeBotMove - triggers the bot to compute and apply its move.
func (that *handlers) MakeBotMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "MakeBotMove")

	if _, err := that.gamePlay.MakeBotMove(r.Context()); err != nil {
		log.Error("bot move failed", "error", err)
		that.writeGameError(w, err)
		return
	}

	log.Info("bot move successful")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("AI move accepted."))
}

// ResetGame - replaces the live match with a fresh one.
func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ResetGame")

	if _, err := that.gamePlay.Reset(r.Context()); err != nil {
		log.Error("reset failed", "error", err)
		http.Error(w, "failed to reset the game", http.StatusInternalServerError)
		return
	}

	log.Info("game reset")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Game reset."))
}

// validatePayload - struct tags cover the lower bounds, the board dimension
// is a deployment setting so the upper bound is checked here.
func (that *handlers) validatePayload(payload *moveRequest) error {
	if err := that.validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid move payload: %w", err)
	}

	for _, pos := range []positionPayload{payload.From, payload.To} {
		if pos.Row >= that.boardSize || pos.Col >= that.boardSize {
			return fmt.Errorf("position (%d,%d) is outside the %dx%d board", pos.Row, pos.Col, that.boardSize, that.boardSize)
		}
	}

	return nil
}

// writeGameError - maps rule-engine rejections to 400 and everything else,
// the bot failing to produce an applicable move included, to 500.
func (that *handlers) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrIllegalSource),
		errors.Is(err, apperror.ErrIllegalMove):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperror.ErrNoAvailableMoves):
		http.Error(w, "AI could not find a move.", http.StatusInternalServerError)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
