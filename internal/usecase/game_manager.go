package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	GameID     string
	Board      entity.Board
	Turn       entity.Mark
	Winner     entity.Mark
	Status     string
	Human      entity.Player
	Bot        entity.Player
	Draws      int
	Difficulty service.Difficulty
	BotName    string
	// LastBotMove is meaningful only when BotMoved is set.
	LastBotMove int
	BotMoved    bool
}

func (that Snapshot) IsFinished() bool {
	return that.Status == entity.StatusFinished
}

// GameManager runs a series of games between a human and a bot. It keeps
// the scoreboard across games, mark swaps and difficulty changes.
type GameManager struct {
	logger *slog.Logger
	rng    *rand.Rand

	game  *entity.Game
	human *entity.Player
	bot   *entity.Player
	draws int

	difficulty  service.Difficulty
	strategy    service.BotStrategy
	lastBotMove int
	botMoved    bool
}

func NewGameManager(logger *slog.Logger, difficulty service.Difficulty, humanMark entity.Mark, rng *rand.Rand) (*GameManager, error) {
	if !humanMark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}

	that := &GameManager{
		logger: logger.With("component", "game_manager"),
		rng:    rng,

		human: &entity.Player{Mark: humanMark},
		bot:   &entity.Player{Mark: humanMark.Opponent(), IsBot: true},
	}

	if err := that.setDifficulty(difficulty); err != nil {
		return nil, err
	}

	return that, nil
}

// NewGame clears the board and, when the bot plays X, makes its opening move.
func (that *GameManager) NewGame(ctx context.Context) (Snapshot, error) {
	log := that.logger.With("method", "NewGame")

	that.game = entity.NewGame(pkg.GenerateGameID())
	that.botMoved = false

	log.InfoContext(ctx, "game started",
		"gameID", that.game.ID,
		"bot", that.strategy.Name(),
		"humanMark", that.human.Mark,
	)

	if that.game.Turn == that.bot.Mark {
		if err := that.botTurn(ctx); err != nil {
			return that.State(), err
		}
	}

	return that.State(), nil
}

// MakeTurn applies the human move and answers with the bot move unless
// the game is over.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (Snapshot, error) {
	if that.game == nil {
		return that.State(), apperror.ErrGameIsNotStarted
	}

	if err := that.game.MakeTurn(that.human.Mark, cell); err != nil {
		return that.State(), fmt.Errorf("failed to make turn: %w", err)
	}

	if that.game.IsFinished() {
		that.finishGame(ctx)

		return that.State(), nil
	}

	if err := that.botTurn(ctx); err != nil {
		return that.State(), err
	}

	return that.State(), nil
}

// SwapMarks exchanges X and O between the human and the bot and starts a
// new game.
func (that *GameManager) SwapMarks(ctx context.Context) (Snapshot, error) {
	strategy, err := newStrategy(that.difficulty, that.human.Mark, that.bot.Mark, that.rng)
	if err != nil {
		return that.State(), err
	}

	that.human.Mark, that.bot.Mark = that.bot.Mark, that.human.Mark
	that.strategy = strategy

	return that.NewGame(ctx)
}

// ChangeDifficulty replaces the bot and starts a new game.
func (that *GameManager) ChangeDifficulty(ctx context.Context, difficulty service.Difficulty) (Snapshot, error) {
	if err := that.setDifficulty(difficulty); err != nil {
		return that.State(), err
	}

	return that.NewGame(ctx)
}

func (that *GameManager) State() Snapshot {
	snapshot := Snapshot{
		Human:       *that.human,
		Bot:         *that.bot,
		Draws:       that.draws,
		Difficulty:  that.difficulty,
		BotName:     that.strategy.Name(),
		LastBotMove: that.lastBotMove,
		BotMoved:    that.botMoved,
	}

	if that.game != nil {
		snapshot.GameID = that.game.ID
		snapshot.Board = that.game.Board.Clone()
		snapshot.Turn = that.game.Turn
		snapshot.Winner = that.game.Winner
		snapshot.Status = that.game.Status
	}

	return snapshot
}

func (that *GameManager) setDifficulty(difficulty service.Difficulty) error {
	strategy, err := newStrategy(difficulty, that.bot.Mark, that.human.Mark, that.rng)
	if err != nil {
		return err
	}

	that.difficulty = difficulty
	that.strategy = strategy

	return nil
}

func newStrategy(difficulty service.Difficulty, botMark, humanMark entity.Mark, rng *rand.Rand) (service.BotStrategy, error) {
	strategy, err := service.NewBotStrategy(difficulty, botMark, humanMark, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return strategy, nil
}

func (that *GameManager) botTurn(ctx context.Context) error {
	log := that.logger.With("method", "botTurn", "gameID", that.game.ID)

	cell, err := that.strategy.MakeMove(that.game.Board)
	if err != nil {
		log.ErrorContext(ctx, "bot found no move", "error", err)
		return errors.Join(apperror.ErrBotMove, err)
	}

	if err = that.game.MakeTurn(that.bot.Mark, cell); err != nil {
		log.ErrorContext(ctx, "bot chose an illegal cell", "cell", cell, "error", err)
		return errors.Join(apperror.ErrBotMove, err)
	}

	that.lastBotMove, that.botMoved = cell, true
	log.DebugContext(ctx, "bot moved", "cell", cell, "bot", that.strategy.Name())

	if that.game.IsFinished() {
		that.finishGame(ctx)
	}

	return nil
}

func (that *GameManager) finishGame(ctx context.Context) {
	switch that.game.Winner {
	case that.human.Mark:
		that.human.Wins++
	case that.bot.Mark:
		that.bot.Wins++
	case entity.PlayerTie:
		that.draws++
	}

	that.logger.InfoContext(ctx, "game finished",
		"gameID", that.game.ID,
		"winner", that.game.Winner,
		"humanWins", that.human.Wins,
		"botWins", that.bot.Wins,
		"draws", that.draws,
	)
}
