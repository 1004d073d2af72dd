package entity

import (
	"slices"

	"github.com/google/uuid"

	"github.com/sbksba/Top-Cap-Game/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// MinBoardSize is the smallest board the starting layout fits on without
// the two clusters or the goal corners touching each other.
const MinBoardSize = 6

const (
	startPieces = 4
	startOffset = 3
)

// The 8 compass directions, in the fixed order move generation iterates them.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Position is a pair of zero-based board coordinates.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game represents the single live match: the board, whose turn it is and
// whether somebody has already won.
type Game struct {
	ID     string     `json:"id"`
	Size   int        `json:"size"`
	Board  [][]string `json:"board"`
	Turn   string     `json:"player_turn"`
	Winner string     `json:"winner,omitempty"`
	Status string     `json:"status"`
}

// NewGame - builds a fresh match with the standard symmetric layout: each
// side's four pieces sit on the anti-diagonal in front of its own goal
// corner, P1 near (0,0) and P2 near (size-1,size-1). Sizes below
// MinBoardSize are clamped to it.
func NewGame(size int) *Game {
	if size < MinBoardSize {
		size = MinBoardSize
	}

	board := make([][]string, size)
	for r := range board {
		board[r] = make([]string, size)
	}

	for i := 0; i < startPieces; i++ {
		board[i][startOffset-i] = PlayerOne
		board[size-1-i][size-1-(startOffset-i)] = PlayerTwo
	}

	return &Game{
		ID:     uuid.NewString(),
		Size:   size,
		Board:  board,
		Turn:   PlayerOne,
		Status: StatusOngoing,
	}
}

// Clone - returns a deep copy of the game; simulated moves run on clones so
// the live match is never touched by the search.
func (that *Game) Clone() *Game {
	board := make([][]string, that.Size)
	for r := range that.Board {
		board[r] = slices.Clone(that.Board[r])
	}

	clone := *that
	clone.Board = board

	return &clone
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// GoalPosition - returns the goal corner a player defends; reaching the
// opponent's goal wins the game.
func (that *Game) GoalPosition(mark string) Position {
	if mark == PlayerOne {
		return Position{Row: 0, Col: 0}
	}
	return Position{Row: that.Size - 1, Col: that.Size - 1}
}

// IsOnBoard - bounds test on signed coordinates, so offset arithmetic can be
// checked before indexing.
func (that *Game) IsOnBoard(row, col int) bool {
	return row >= 0 && row < that.Size && col >= 0 && col < that.Size
}

// MakeMove - the sole mutator. It validates the move, relocates the piece
// and recomputes the game status. A failed attempt leaves the board
// untouched. Calling it on a finished game is the caller's mistake; the
// service layer guards for that.
func (that *Game) MakeMove(from, to Position) error {
	if !that.IsOnBoard(from.Row, from.Col) || that.Board[from.Row][from.Col] != that.Turn {
		return apperror.ErrIllegalSource
	}

	if !slices.Contains(that.ValidMovesForPiece(from), to) {
		return apperror.ErrIllegalMove
	}

	that.Board[to.Row][to.Col] = that.Board[from.Row][from.Col]
	that.Board[from.Row][from.Col] = EmptyCell

	// Reaching the opponent's goal wins on the spot; the turn does not pass.
	if to == that.GoalPosition(Opponent(that.Turn)) {
		that.Winner = that.Turn
		that.Status = StatusFinished
		return nil
	}

	that.Turn = Opponent(that.Turn)

	// The new player to move loses immediately if stuck everywhere.
	if !that.HasAnyValidMoves(that.Turn) {
		that.Winner = Opponent(that.Turn)
		that.Status = StatusFinished
	}

	return nil
}

// ValidMovesForPiece - computes every legal destination for the piece at
// pos. The leap distance equals the current number of occupied Moore
// neighbors, so it is recomputed from the live board on every call.
func (that *Game) ValidMovesForPiece(pos Position) []Position {
	owner := that.Board[pos.Row][pos.Col]
	if owner == EmptyCell {
		return nil
	}

	dist := that.CountNeighbors(pos)
	if dist == 0 {
		return nil // a piece with no neighbors cannot move
	}

	var moves []Position
	for _, dir := range directions {
		row := pos.Row + dir[0]*dist
		col := pos.Col + dir[1]*dist

		if !that.IsOnBoard(row, col) {
			continue
		}

		target := Position{Row: row, Col: col}
		if that.isMoveValid(pos, target, owner) {
			moves = append(moves, target)
		}
	}

	return moves
}

// HasAnyValidMoves - true if at least one of the player's pieces can move.
func (that *Game) HasAnyValidMoves(mark string) bool {
	for r := 0; r < that.Size; r++ {
		for c := 0; c < that.Size; c++ {
			if that.Board[r][c] != mark {
				continue
			}

			if len(that.ValidMovesForPiece(Position{Row: r, Col: c})) > 0 {
				return true
			}
		}
	}

	return false
}

// CountNeighbors - counts occupied cells among the up-to-8 board-clipped
// neighbors, regardless of which player occupies them.
func (that *Game) CountNeighbors(pos Position) int {
	count := 0
	for rOffset := -1; rOffset <= 1; rOffset++ {
		for cOffset := -1; cOffset <= 1; cOffset++ {
			if rOffset == 0 && cOffset == 0 {
				continue
			}

			row := pos.Row + rOffset
			col := pos.Col + cOffset
			if that.IsOnBoard(row, col) && that.Board[row][col] != EmptyCell {
				count++
			}
		}
	}

	return count
}

// isMoveValid - destination must be empty, must not be the mover's own goal
// and the straight line between the endpoints must be free of pieces.
func (that *Game) isMoveValid(from, to Position, mover string) bool {
	if that.Board[to.Row][to.Col] != EmptyCell {
		return false
	}

	if to == that.GoalPosition(mover) {
		return false
	}

	return that.isPathClear(from, to)
}

// isPathClear - checks the cells strictly between from and to; the piece
// leaps an exact distance but may not jump over anything.
func (that *Game) isPathClear(from, to Position) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)

	row, col := from.Row+dr, from.Col+dc
	for row != to.Row || col != to.Col {
		if that.Board[row][col] != EmptyCell {
			return false
		}
		row += dr
		col += dc
	}

	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
