package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

const helpText = `Commands:
  <0-8> | move <0-8>     place your mark
  new                    start a new game
  swap                   swap X and O, then start a new game
  difficulty <level>     easy, medium or hard, then start a new game
  score                  show the scoreboard
  help                   show this help
  quit                   leave
`

func (that *Server) handleMove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		that.printf("Usage: move <0-8>\n")
		return nil
	}

	cell, err := strconv.Atoi(args[0])
	if err != nil {
		that.printf("%q is not a cell number.\n", args[0])
		return nil
	}

	state, err := that.uGame.MakeTurn(ctx, cell)
	if err != nil {
		return that.handleGameError(err, state)
	}

	that.render(state)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, _ []string) error {
	state, err := that.uGame.NewGame(ctx)
	if err != nil {
		return that.handleGameError(err, state)
	}

	that.render(state)

	return nil
}

func (that *Server) handleSwap(ctx context.Context, _ []string) error {
	state, err := that.uGame.SwapMarks(ctx)
	if err != nil {
		return that.handleGameError(err, state)
	}

	that.printf("You now play %s.\n", state.Human.Mark)
	that.render(state)

	return nil
}

func (that *Server) handleDifficulty(ctx context.Context, args []string) error {
	if len(args) != 1 {
		that.printf("Usage: difficulty <easy|medium|hard>\n")
		return nil
	}

	difficulty, err := service.ParseDifficulty(args[0])
	if err != nil {
		that.printf("Unknown difficulty %q.\n", args[0])
		return nil
	}

	state, err := that.uGame.ChangeDifficulty(ctx, difficulty)
	if err != nil {
		return that.handleGameError(err, state)
	}

	that.printf("Now playing against %s.\n", state.BotName)
	that.render(state)

	return nil
}

func (that *Server) handleScore(_ context.Context, _ []string) error {
	that.printf("%s\n", that.scoreLine(that.uGame.State()))

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string) error {
	that.printf("%s", helpText)

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string) error {
	that.printf("Bye.\n")

	return errQuit
}

// handleGameError reports recoverable errors to the player. Only bot
// failures are logged; the player is asked to start over.
func (that *Server) handleGameError(err error, state usecase.Snapshot) error {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		that.printf("That cell is already taken.\n")
	case errors.Is(err, apperror.ErrInvalidCell):
		that.printf("Pick a cell between 0 and %d.\n", entity.CellsCount-1)
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrGameIsNotStarted):
		that.printf("The game is over. Type new to play again.\n")
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.printf("Wait for your turn.\n")
	case errors.Is(err, apperror.ErrBotMove):
		that.logger.Error("bot failed", "gameID", state.GameID, "error", err)
		that.printf("Game error. Type new to restart.\n")
	default:
		return fmt.Errorf("unexpected game error: %w", err)
	}

	return nil
}

func (that *Server) render(state usecase.Snapshot) {
	that.printf("%s\n", that.renderBoard(state))

	switch {
	case !state.IsFinished():
		that.printf("Your turn (%s).\n", state.Human.Mark)
	case state.Winner == state.Human.Mark:
		that.printf("%s\n", that.output.String("You win!").Foreground(termenv.ANSIGreen).Bold())
		that.printf("%s\n", that.scoreLine(state))
	case state.Winner == state.Bot.Mark:
		that.printf("%s\n", that.output.String(state.BotName+" wins!").Foreground(termenv.ANSIRed).Bold())
		that.printf("%s\n", that.scoreLine(state))
	default:
		that.printf("%s\n", that.output.String("Draw!").Faint())
		that.printf("%s\n", that.scoreLine(state))
	}
}

func (that *Server) renderBoard(state usecase.Snapshot) string {
	cells := state.Board.Cells()
	rows := make([]string, 0, entity.BoardSize)

	for row := 0; row < entity.BoardSize; row++ {
		line := make([]string, 0, entity.BoardSize)

		for col := 0; col < entity.BoardSize; col++ {
			position := entity.Position(row, col)
			line = append(line, " "+that.renderCell(state, position, cells[position])+" ")
		}

		rows = append(rows, strings.Join(line, "|"))
	}

	return strings.Join(rows, "\n---+---+---\n")
}

func (that *Server) renderCell(state usecase.Snapshot, position int, cell entity.Mark) string {
	switch cell {
	case entity.EmptyCell:
		return that.output.String(strconv.Itoa(position)).Faint().String()
	case state.Human.Mark:
		return that.output.String(string(cell)).Foreground(termenv.ANSIBlue).Bold().String()
	default:
		style := that.output.String(string(cell)).Foreground(termenv.ANSIRed).Bold()
		if state.BotMoved && position == state.LastBotMove {
			style = style.Underline()
		}

		return style.String()
	}
}

func (that *Server) scoreLine(state usecase.Snapshot) string {
	return fmt.Sprintf("You (%s): %d | %s (%s): %d | Draws: %d",
		state.Human.Mark, state.Human.Wins,
		state.BotName, state.Bot.Mark, state.Bot.Wins,
		state.Draws,
	)
}
