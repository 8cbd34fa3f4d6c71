package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game is a single match: the board, whose turn it is and how it ended.
type Game struct {
	ID     string
	Board  Board
	Winner Mark
	Status string
	Turn   Mark
}

// NewGame returns an empty ongoing game with X to move.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(),
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// DetermineGameResult returns the winner's mark, PlayerTie for a full board
// without a winner, or EmptyCell while the game goes on.
func (that *Game) DetermineGameResult() Mark {
	if winner := that.Board.CheckWinner(); winner != EmptyCell {
		return winner
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return EmptyCell
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins or tie
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

// MakeTurn applies a move for playerMark, enforcing turn order, and
// passes the turn to the opponent.
func (that *Game) MakeTurn(playerMark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	current, err := that.Board.GetCell(cell)
	if err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if current != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if !that.Board.MakeMove(cell, playerMark) {
		return fmt.Errorf("%w: mark %q", apperror.ErrInvalidMark, playerMark)
	}

	that.Turn = playerMark.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
