package bot

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Difficulty selects a bot strategy.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrNoMovesLeft = errors.New("no empty box left on the board")

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")

	moveDuration, _ = meter.Float64Histogram("tictactoe.bot.move.duration",
		metric.WithDescription("Time a bot spent choosing a move."),
		metric.WithUnit("ms"),
	)
	searchNodes, _ = meter.Int64Histogram("tictactoe.search.nodes",
		metric.WithDescription("Positions visited by one minimax search."),
	)
)

// Bot chooses the box (1-9) it wants to mark next.
type Bot interface {
	ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error)
}

// Config describes the bot built by New.
type Config struct {
	Difficulty Difficulty
	// Seed feeds the random source of the easy and medium bots. Zero picks a
	// random seed.
	Seed uint64
	// Parallel evaluates the root moves of the hard bot concurrently.
	Parallel bool
}

// New creates a bot for the configured difficulty.
func New(cfg Config) (Bot, error) {
	switch cfg.Difficulty {
	case Easy:
		return NewRandomBot(cfg.Seed), nil
	case Medium:
		return NewHeuristicBot(cfg.Seed), nil
	case Hard, "":
		return NewMinimaxBot(MinimaxConfig{Parallel: cfg.Parallel}), nil
	default:
		return nil, fmt.Errorf("unknown bot difficulty: %q", cfg.Difficulty)
	}
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown bot difficulty: %q", s)
}
