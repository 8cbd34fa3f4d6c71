package service

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// NoMove is returned alongside ErrNoAvailableMoves when the board is full.
const NoMove = -1

const (
	MediumDepth = 3
	HardDepth   = 10
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(value); difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// BotStrategy decides which cell the automated opponent plays.
type BotStrategy interface {
	Name() string
	MakeMove(board entity.Board) (int, error)
}

// NewBotStrategy builds the strategy for a difficulty. rng is only used by
// the easy strategy.
func NewBotStrategy(difficulty Difficulty, botMark, humanMark entity.Mark, rng *rand.Rand) (BotStrategy, error) {
	var maxDepth int

	switch difficulty {
	case DifficultyEasy:
		return NewRandomStrategy(rng), nil
	case DifficultyMedium:
		maxDepth = MediumDepth
	case DifficultyHard:
		maxDepth = HardDepth
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}

	strategy, err := NewMinimaxStrategy(botMark, humanMark, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bot: %w", difficulty, err)
	}

	return strategy, nil
}
