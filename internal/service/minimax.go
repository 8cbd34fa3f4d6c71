package service

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	mediumStrategyName = "Medium AI"
	hardStrategyName   = "Hard AI"

	winScore = 10
)

// MinimaxStrategy searches the game tree up to maxDepth plies without
// pruning. Among equally scored moves the lowest cell index wins.
type MinimaxStrategy struct {
	name      string
	botMark   entity.Mark
	humanMark entity.Mark
	maxDepth  int
}

func NewMinimaxStrategy(botMark, humanMark entity.Mark, maxDepth int) (*MinimaxStrategy, error) {
	if !botMark.IsPlayer() || !humanMark.IsPlayer() || botMark == humanMark {
		return nil, fmt.Errorf("%w: bot %q, human %q", apperror.ErrInvalidMark, botMark, humanMark)
	}

	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidDepth, maxDepth)
	}

	return &MinimaxStrategy{
		name:      strategyName(maxDepth),
		botMark:   botMark,
		humanMark: humanMark,
		maxDepth:  maxDepth,
	}, nil
}

func strategyName(maxDepth int) string {
	if maxDepth == MediumDepth {
		return mediumStrategyName
	}

	return hardStrategyName
}

func (that *MinimaxStrategy) Name() string {
	return that.name
}

func (that *MinimaxStrategy) MaxDepth() int {
	return that.maxDepth
}

// MakeMove scores every empty cell and returns the first one with the
// highest score.
func (that *MinimaxStrategy) MakeMove(board entity.Board) (int, error) {
	bestMove := NoMove
	bestScore := math.MinInt

	for _, cell := range board.GetAvailableMoves() {
		next := board.Clone()
		next.MakeMove(cell, that.botMark)

		// only a strict improvement replaces the incumbent
		if score := that.evaluate(next, 0, false); score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	if bestMove == NoMove {
		return NoMove, apperror.ErrNoAvailableMoves
	}

	return bestMove, nil
}

// evaluate returns the score of board from the bot's point of view. depth
// counts plies played after the move under evaluation.
func (that *MinimaxStrategy) evaluate(board entity.Board, depth int, maximizing bool) int {
	switch board.CheckWinner() {
	case that.botMark:
		return winScore - depth
	case that.humanMark:
		return depth - winScore
	}

	if board.IsFull() || depth >= that.maxDepth {
		return 0
	}

	if maximizing {
		maxScore := math.MinInt
		for _, cell := range board.GetAvailableMoves() {
			next := board.Clone()
			next.MakeMove(cell, that.botMark)

			maxScore = max(maxScore, that.evaluate(next, depth+1, false))
		}

		return maxScore
	}

	minScore := math.MaxInt
	for _, cell := range board.GetAvailableMoves() {
		next := board.Clone()
		next.MakeMove(cell, that.humanMark)

		minScore = min(minScore, that.evaluate(next, depth+1, true))
	}

	return minScore
}
