package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/cli"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok

	gameManager, err := usecase.NewGameManager(logger, conf.GetDifficulty(), conf.GetHumanMark(), rng)
	if err != nil {
		return fmt.Errorf("could not create game manager: %w", err)
	}

	log.Info("Starting terminal session", "difficulty", conf.Difficulty, "humanMark", conf.HumanMark)

	server := cli.New(logger, gameManager, out, conf.NoColor)
	if err = server.Start(ctx, in); err != nil {
		return fmt.Errorf("terminal session error: %w", err)
	}

	return nil
}
