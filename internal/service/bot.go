package service

import (
	"github.com/sbksba/Top-Cap-Game/internal/apperror"
	"github.com/sbksba/Top-Cap-Game/internal/entity"
)

// BotMark - the side the bot always plays.
const BotMark = entity.PlayerTwo

// DefaultSearchDepth bounds the minimax recursion; raising it makes the bot
// stronger and every /ai-move request slower.
const DefaultSearchDepth = 3

const winScore = 1000

type BotService interface {
	FindBestMove(game *entity.Game) (entity.Position, entity.Position, error)
}

type botService struct {
	searchDepth int
}

func NewBotService(searchDepth int) BotService {
	if searchDepth < 1 {
		searchDepth = DefaultSearchDepth
	}

	return &botService{searchDepth: searchDepth}
}

// FindBestMove - picks the bot's move by fixed-depth minimax over cloned
// boards. Ties keep the first candidate in row-major source order, so the
// choice is deterministic. Returns ErrNoAvailableMoves when the bot is
// stuck everywhere, which is an immediate loss for it.
func (that *botService) FindBestMove(game *entity.Game) (entity.Position, entity.Position, error) {
	candidates := collectMoves(game, BotMark)
	if len(candidates) == 0 {
		return entity.Position{}, entity.Position{}, apperror.ErrNoAvailableMoves
	}

	var bestMove move
	bestScore := minInt

	for _, candidate := range candidates {
		simulated := game.Clone()
		if err := simulated.MakeMove(candidate.from, candidate.to); err != nil {
			continue // generated moves are legal; defensive only
		}

		score := that.minimax(simulated, that.searchDepth-1, false)
		if score > bestScore {
			bestScore = score
			bestMove = candidate
		}
	}

	return bestMove.from, bestMove.to, nil
}

type move struct {
	from entity.Position
	to   entity.Position
}

const (
	minInt = -int(^uint(0)>>1) - 1
	maxInt = int(^uint(0) >> 1)
)

// minimax - plain recursive search without pruning; every node simulates on
// its own clone so sibling branches never see each other's mutations.
func (that *botService) minimax(game *entity.Game, depth int, maximizing bool) int {
	if depth == 0 || !game.IsOngoing() {
		return evaluate(game)
	}

	playerToMove := entity.PlayerOne
	if maximizing {
		playerToMove = BotMark
	}

	candidates := collectMoves(game, playerToMove)

	// A side with no moves has lost even before the status says so; the
	// transition only happens inside MakeMove.
	if len(candidates) == 0 {
		if maximizing {
			return -winScore
		}
		return winScore
	}

	if maximizing {
		best := minInt
		for _, candidate := range candidates {
			simulated := game.Clone()
			_ = simulated.MakeMove(candidate.from, candidate.to)
			if score := that.minimax(simulated, depth-1, false); score > best {
				best = score
			}
		}
		return best
	}

	best := maxInt
	for _, candidate := range candidates {
		simulated := game.Clone()
		_ = simulated.MakeMove(candidate.from, candidate.to)
		if score := that.minimax(simulated, depth-1, true); score < best {
			best = score
		}
	}
	return best
}

// collectMoves - the full (from, to) move set for one side, scanning source
// squares top-to-bottom, left-to-right.
func collectMoves(game *entity.Game, mark string) []move {
	var moves []move
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			if game.Board[r][c] != mark {
				continue
			}

			from := entity.Position{Row: r, Col: c}
			for _, to := range game.ValidMovesForPiece(from) {
				moves = append(moves, move{from: from, to: to})
			}
		}
	}

	return moves
}

// evaluate - static score of a position from the bot's point of view.
// Terminal states dominate everything; otherwise each piece contributes its
// Manhattan distance to the goal corner it is heading away from, added for
// the bot and subtracted for the opponent.
func evaluate(game *entity.Game) int {
	switch game.Winner {
	case BotMark:
		return winScore
	case entity.PlayerOne:
		return -winScore
	}

	score := 0
	edge := game.Size - 1
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			switch game.Board[r][c] {
			case entity.PlayerOne:
				score -= (edge - r) + (edge - c)
			case BotMark:
				score += r + c
			}
		}
	}

	return score
}
