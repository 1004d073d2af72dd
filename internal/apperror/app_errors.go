package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already over")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrIllegalSource    = errors.New("invalid starting square or that's not your piece")
	ErrIllegalMove      = errors.New("illegal move")
	ErrNoAvailableMoves = errors.New("no available moves")
)
