package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func mustMinimax(t *testing.T, botMark entity.Mark, maxDepth int) *MinimaxStrategy {
	t.Helper()

	strategy, err := NewMinimaxStrategy(botMark, botMark.Opponent(), maxDepth)
	require.NoError(t, err)

	return strategy
}

func TestNewMinimaxStrategy(t *testing.T) {
	t.Run("Name follows the depth", func(t *testing.T) {
		assert.Equal(t, "Medium AI", mustMinimax(t, o, MediumDepth).Name())
		assert.Equal(t, "Hard AI", mustMinimax(t, o, HardDepth).Name())
		assert.Equal(t, "Hard AI", mustMinimax(t, o, 5).Name())
	})

	t.Run("Rejects invalid marks", func(t *testing.T) {
		_, err := NewMinimaxStrategy(x, x, HardDepth)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)

		_, err = NewMinimaxStrategy(e, x, HardDepth)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)

		_, err = NewMinimaxStrategy(o, entity.PlayerTie, HardDepth)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Rejects non-positive depth", func(t *testing.T) {
		_, err := NewMinimaxStrategy(o, x, 0)
		require.ErrorIs(t, err, apperror.ErrInvalidDepth)

		_, err = NewMinimaxStrategy(o, x, -3)
		require.ErrorIs(t, err, apperror.ErrInvalidDepth)
	})
}

func TestMinimaxStrategy_evaluate(t *testing.T) {
	strategy := mustMinimax(t, x, HardDepth)

	t.Run("Bot win scores higher when earlier", func(t *testing.T) {
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, x, x,
			o, o, e,
			e, e, e,
		})

		assert.Equal(t, 10, strategy.evaluate(board, 0, false))
		assert.Equal(t, 8, strategy.evaluate(board, 2, true))
	})

	t.Run("Human win scores lower when earlier", func(t *testing.T) {
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			o, o, o,
			x, x, e,
			x, e, e,
		})

		assert.Equal(t, -9, strategy.evaluate(board, 1, true))
		assert.Equal(t, -7, strategy.evaluate(board, 3, true))
	})

	t.Run("Draw is neutral", func(t *testing.T) {
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		assert.Equal(t, 0, strategy.evaluate(board, 4, false))
	})

	t.Run("Horizon is neutral", func(t *testing.T) {
		shallow := mustMinimax(t, x, 1)

		// X would win next move, but the horizon is reached first
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, x, e,
			o, o, e,
			e, e, e,
		})

		assert.Equal(t, 0, shallow.evaluate(board, 1, true))
	})
}

func TestMinimaxStrategy_MakeMove(t *testing.T) {
	t.Run("Empty board opening is deterministic", func(t *testing.T) {
		// Given: a perfect player moving first
		strategy := mustMinimax(t, x, HardDepth)
		board := entity.NewBoard()

		// When: asking for the opening several times
		first, err := strategy.MakeMove(board)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			again, err := strategy.MakeMove(board)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}

		// Then: every opening draws, so the lowest corner is kept
		assert.Equal(t, 0, first)
	})

	t.Run("Prefers the faster win", func(t *testing.T) {
		// Given: X wins now at 7, or at 0 with a fork that wins a move later
		strategy := mustMinimax(t, x, HardDepth)
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			e, o, o,
			e, e, e,
			x, e, x,
		})

		// Sanity: the fork is a win too, just a slower one
		fork := board.Clone()
		require.True(t, fork.MakeMove(0, x))
		require.Equal(t, 8, strategy.evaluate(fork, 0, false))

		// When: asking for a move
		cell, err := strategy.MakeMove(board)

		// Then: the immediate win is chosen over the earlier-indexed fork
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
	})

	t.Run("Blocks an immediate threat at medium depth", func(t *testing.T) {
		// Given: X threatens the top row
		strategy := mustMinimax(t, o, MediumDepth)
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, x, e,
			e, o, e,
			e, e, e,
		})

		// When: asking for a move
		cell, err := strategy.MakeMove(board)

		// Then: O blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the win instead of blocking", func(t *testing.T) {
		strategy := mustMinimax(t, o, 1)
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, x, e,
			o, o, e,
			x, e, e,
		})

		cell, err := strategy.MakeMove(board)

		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Does not mutate the board", func(t *testing.T) {
		strategy := mustMinimax(t, o, HardDepth)
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, e, e,
			e, e, e,
			e, e, e,
		})
		before := board.Clone()

		_, err := strategy.MakeMove(board)

		require.NoError(t, err)
		assert.Equal(t, before, board)
	})

	t.Run("Full board returns ErrNoAvailableMoves", func(t *testing.T) {
		strategy := mustMinimax(t, o, HardDepth)
		board := entity.BoardOf([entity.CellsCount]entity.Mark{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		cell, err := strategy.MakeMove(board)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		assert.Equal(t, NoMove, cell)
	})
}

// playEveryLine lets the opponent try every legal reply and returns the
// number of finished games and how many of them the bot lost.
func playEveryLine(t *testing.T, strategy *MinimaxStrategy, board entity.Board, turn entity.Mark) (int, int) {
	t.Helper()

	if winner := board.CheckWinner(); winner != entity.EmptyCell || board.IsFull() {
		if winner == strategy.humanMark {
			t.Logf("lost line:\n%s", board)
			return 1, 1
		}

		return 1, 0
	}

	if turn == strategy.botMark {
		cell, err := strategy.MakeMove(board)
		require.NoError(t, err)
		require.True(t, board.MakeMove(cell, turn))

		return playEveryLine(t, strategy, board, turn.Opponent())
	}

	var games, losses int
	for _, cell := range board.GetAvailableMoves() {
		next := board.Clone()
		require.True(t, next.MakeMove(cell, turn))

		g, l := playEveryLine(t, strategy, next, turn.Opponent())
		games += g
		losses += l
	}

	return games, losses
}

func TestMinimaxStrategy_NeverLoses(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive game enumeration")
	}

	t.Run("Bot plays first", func(t *testing.T) {
		strategy := mustMinimax(t, x, HardDepth)

		games, losses := playEveryLine(t, strategy, entity.NewBoard(), x)

		assert.Positive(t, games)
		assert.Zero(t, losses)
	})

	t.Run("Bot plays second", func(t *testing.T) {
		strategy := mustMinimax(t, o, HardDepth)

		games, losses := playEveryLine(t, strategy, entity.NewBoard(), x)

		assert.Positive(t, games)
		assert.Zero(t, losses)
	})
}
