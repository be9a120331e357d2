package bot

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// RandomBot picks uniformly among the empty boxes.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomBot creates a RandomBot. A zero seed draws one from the runtime's
// random source.
func NewRandomBot(seed uint64) *RandomBot {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewRandomBotFromSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomBotFromSource creates a RandomBot drawing from src.
func NewRandomBotFromSource(src rand.Source) *RandomBot {
	return &RandomBot{rng: rand.New(src)}
}

func (b *RandomBot) ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error) {
	_, span := tracer.Start(ctx, "bot.RandomBot.ChooseMove", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
	))
	defer span.End()

	box, err := b.pick(game.EmptyPositions(board))
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("move.box", box))
	return box, nil
}

func (b *RandomBot) pick(available []game.Position) (int, error) {
	if len(available) == 0 {
		return 0, ErrNoMovesLeft
	}

	b.mu.Lock()
	i := b.rng.IntN(len(available))
	b.mu.Unlock()

	return available[i].Box(), nil
}

// HeuristicBot will win if it can, block if it must, otherwise move randomly.
type HeuristicBot struct {
	random *RandomBot
}

func NewHeuristicBot(seed uint64) *HeuristicBot {
	return &HeuristicBot{random: NewRandomBot(seed)}
}

func (b *HeuristicBot) ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error) {
	ctx, span := tracer.Start(ctx, "bot.HeuristicBot.ChooseMove", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
	))
	defer span.End()
	start := time.Now()
	defer func() {
		moveDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
			metric.WithAttributes(attribute.String("bot.difficulty", string(Medium))))
	}()

	// 1. Win
	if boxes := game.WinningBoxes(board, mark); len(boxes) > 0 {
		span.SetAttributes(attribute.String("bot.reason", "win"), attribute.Int("move.box", boxes[0]))
		return boxes[0], nil
	}

	// 2. Block
	if boxes := game.WinningBoxes(board, game.Opponent(mark)); len(boxes) > 0 {
		span.SetAttributes(attribute.String("bot.reason", "block"), attribute.Int("move.box", boxes[0]))
		return boxes[0], nil
	}

	// 3. Random
	box, err := b.random.pick(game.EmptyPositions(board))
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	span.SetAttributes(attribute.String("bot.reason", "random"), attribute.Int("move.box", box))
	return box, nil
}
