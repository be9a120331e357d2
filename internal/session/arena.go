package session

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/validator"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ArenaConfig describes a series of bot games.
type ArenaConfig struct {
	Games int `validate:"gte=1"`
	// Workers bounds the games played at once. Zero uses GOMAXPROCS.
	Workers int `validate:"gte=0"`
	// SwapMarks alternates who plays X. Otherwise the first player is X in
	// every game.
	SwapMarks bool
}

// Tally counts finished arena games.
type Tally struct {
	Games int
	XWins int
	OWins int
	Ties  int
	// Wins counts wins per contestant name.
	Wins map[string]int
	// Moves holds the accepted boxes of every finished game, indexed by game
	// number.
	Moves [][]int
}

func (t *Tally) record(i int, res Result) {
	t.Games++
	switch res.Outcome {
	case game.WinnerX:
		t.XWins++
	case game.WinnerO:
		t.OWins++
	case game.Tie:
		t.Ties++
	}
	if res.Winner != nil {
		t.Wins[res.Winner.Name]++
	}
	t.Moves[i] = res.Moves
}

// Contestant is one side of an arena.
type Contestant struct {
	Name string
	// NewMover builds the mover for game i, counted from 0. Games run
	// concurrently, so movers that share state across games make the results
	// depend on scheduling.
	NewMover func(i int) (player.Mover, error)
}

// Shared returns a contestant that uses m in every game. m must be safe for
// concurrent use.
func Shared(name string, m player.Mover) Contestant {
	return Contestant{Name: name, NewMover: func(int) (player.Mover, error) { return m, nil }}
}

func (c Contestant) player(i int) (*player.Player, error) {
	m, err := c.NewMover(i)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	return player.NewBot(c.Name, m), nil
}

// Arena plays bot against bot.
type Arena struct {
	First  Contestant
	Second Contestant
	cfg    ArenaConfig
}

func NewArena(first, second Contestant, cfg ArenaConfig) (*Arena, error) {
	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	if first.NewMover == nil || second.NewMover == nil {
		return nil, errors.New("arena contestants need a NewMover")
	}
	if first.Name == second.Name {
		return nil, fmt.Errorf("arena contestants need distinct names, both are %q", first.Name)
	}
	return &Arena{First: first, Second: second, cfg: cfg}, nil
}

// Run plays every game and returns the tally. The first failing game
// cancels the rest; the tally then covers the games that finished.
func (a *Arena) Run(ctx context.Context) (Tally, error) {
	ctx, span := tracer.Start(ctx, "session.Arena.Run", trace.WithAttributes(
		attribute.Int("arena.games", a.cfg.Games),
		attribute.Bool("arena.swap_marks", a.cfg.SwapMarks),
	))
	defer span.End()

	workers := a.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	tally := Tally{
		Wins:  map[string]int{a.First.Name: 0, a.Second.Name: 0},
		Moves: make([][]int, a.cfg.Games),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < a.cfg.Games; i++ {
		first, second := a.First, a.Second
		if a.cfg.SwapMarks && i%2 == 1 {
			first, second = second, first
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			x, err := first.player(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			o, err := second.player(i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			res, err := New(x, o, Config{}).Play(gctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}

			mu.Lock()
			tally.record(i, res)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	span.SetAttributes(
		attribute.Int("arena.x_wins", tally.XWins),
		attribute.Int("arena.o_wins", tally.OWins),
		attribute.Int("arena.ties", tally.Ties),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Arena aborted")
		return tally, err
	}

	slog.InfoContext(ctx, "Arena finished", "games", tally.Games, "x_wins", tally.XWins, "o_wins", tally.OWins, "ties", tally.Ties)
	return tally, nil
}
