package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrInvalidDepth      = errors.New("search depth must be positive")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrBotMove           = errors.New("bot failed to make turn")
	ErrInvalidLogLevel   = errors.New("unknown log level")
)
