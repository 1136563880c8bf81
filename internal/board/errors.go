package board

import "errors"

var (
	ErrOutOfBounds      = errors.New("target is off the board")
	ErrTooFar           = errors.New("target is beyond move range")
	ErrCellOccupied     = errors.New("target cell is occupied")
	ErrNotPlaying       = errors.New("game is not in play")
	ErrNotYourTurn      = errors.New("not this player's turn")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrUnknownShip      = errors.New("unknown ship")
	ErrInvalidTarget    = errors.New("invalid combat target")
	ErrTargetOutOfRange = errors.New("target ship is out of range")
	ErrShipSunk         = errors.New("ship has been sunk")
	ErrGameFull         = errors.New("game already has the maximum number of players")
	ErrBoardTooSmall    = errors.New("board too small for requested content")
)
