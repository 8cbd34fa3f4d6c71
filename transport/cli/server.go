package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

var errQuit = errors.New("quit")

type uGame interface {
	NewGame(ctx context.Context) (usecase.Snapshot, error)
	MakeTurn(ctx context.Context, cell int) (usecase.Snapshot, error)
	SwapMarks(ctx context.Context) (usecase.Snapshot, error)
	ChangeDifficulty(ctx context.Context, difficulty service.Difficulty) (usecase.Snapshot, error)
	State() usecase.Snapshot
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	output *termenv.Output

	handlers map[string]func(ctx context.Context, args []string) error
}

// New creates a terminal front end writing to w. With noColor set the
// output carries no escape sequences.
func New(logger *slog.Logger, uGame uGame, w io.Writer, noColor bool) *Server {
	var opts []termenv.OutputOption
	if noColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	server := &Server{
		logger: logger.With("component", "cli"),
		uGame:  uGame,
		output: termenv.NewOutput(w, opts...),

		handlers: make(map[string]func(context.Context, []string) error),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["new"] = server.handleNewGame
	server.handlers["swap"] = server.handleSwap
	server.handlers["difficulty"] = server.handleDifficulty
	server.handlers["score"] = server.handleScore
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit

	return server
}

// Start - starts a new game and reads commands from r until quit, EOF or
// context cancellation.
func (that *Server) Start(ctx context.Context, r io.Reader) error {
	log := that.logger.With("method", "Start")

	state, err := that.uGame.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.printf("Tic-tac-toe against %s. Type help for commands.\n", state.BotName)
	that.render(state)

	lines := make(chan string)
	// buffered so the reader always reports before lines is closed
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, leaving")
			return nil
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					log.Info("context canceled, leaving")
					return nil
				}

				if err = <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			if err = that.dispatch(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}

				return err
			}
		}
	}
}

// dispatch routes one input line to its handler. A bare cell number is a move.
func (that *Server) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	command, args := fields[0], fields[1:]
	if _, err := strconv.Atoi(command); err == nil {
		command, args = "move", fields
	}

	switch command {
	case "restart":
		command = "new"
	case "exit", "q":
		command = "quit"
	}

	handler, ok := that.handlers[command]
	if !ok {
		that.printf("Unknown command %q. Type help for commands.\n", command)
		return nil
	}

	return handler(ctx, args)
}

func (that *Server) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.output, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
