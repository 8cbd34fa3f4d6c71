package suite

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"testing"
	"time"
)

const (
	maxWaitDuration = 120 * time.Second

	// Seed makes every random choice in a test reproducible.
	Seed = 42
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Rand *rand.Rand
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	var out io.Writer = io.Discard
	if testing.Verbose() {
		out = os.Stdout
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(Seed)), //nolint: gosec // deterministic tests
	}
}
