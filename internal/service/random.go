package service

import (
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const randomStrategyName = "Easy AI"

// RandomStrategy picks a uniformly random empty cell.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy creates a RandomStrategy. A nil rng is replaced by a
// time-seeded source.
func NewRandomStrategy(rng *rand.Rand) *RandomStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &RandomStrategy{rng: rng}
}

func (that *RandomStrategy) Name() string {
	return randomStrategyName
}

func (that *RandomStrategy) MakeMove(board entity.Board) (int, error) {
	availableCells := board.GetAvailableMoves()
	if len(availableCells) == 0 {
		return NoMove, apperror.ErrNoAvailableMoves
	}

	return availableCells[that.rng.Intn(len(availableCells))], nil
}
