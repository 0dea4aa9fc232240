package apperror

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMalformedInput   = errors.New("malformed move input")
	ErrOutOfRange       = errors.New("cell is out of range")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidMark      = errors.New("invalid player mark")
	ErrRoundFinished    = errors.New("round is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoAvailableMoves = errors.New("no available moves")
)
