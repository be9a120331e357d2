package bot

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Scores are relative to the mark the search was started for.
const (
	WinScore  = 10
	LossScore = -10
	TieScore  = 0
)

// MinimaxConfig tunes a MinimaxBot. The zero value searches sequentially.
type MinimaxConfig struct {
	// Parallel searches each root move in its own goroutine. The chosen
	// move is the same as in a sequential search.
	Parallel bool
}

// Stats counts the work done by one search.
type Stats struct {
	Visited  uint64
	Terminal uint64
}

func (s *Stats) add(o Stats) {
	s.Visited += o.Visited
	s.Terminal += o.Terminal
}

// ScoredMove is a root move and its minimax value.
type ScoredMove struct {
	Box   int
	Score int
}

// Analysis is the full result of a root search.
type Analysis struct {
	Mark  game.PlayerMark
	Best  ScoredMove
	Moves []ScoredMove // row-major order
	Stats Stats
}

// MinimaxBot plays perfectly by searching the whole game tree on every call.
type MinimaxBot struct {
	cfg MinimaxConfig
}

func NewMinimaxBot(cfg MinimaxConfig) *MinimaxBot {
	return &MinimaxBot{cfg: cfg}
}

// ChooseMove returns the box with the highest minimax value for mark. Among
// equal values the lowest box wins.
func (m *MinimaxBot) ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error) {
	an, err := m.Analyze(ctx, board, mark)
	if err != nil {
		return 0, err
	}
	return an.Best.Box, nil
}

// Analyze scores every empty box for mark.
func (m *MinimaxBot) Analyze(ctx context.Context, board game.Board, mark game.PlayerMark) (Analysis, error) {
	ctx, span := tracer.Start(ctx, "bot.MinimaxBot.Analyze", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
		attribute.String("board", board.String()),
		attribute.Bool("bot.parallel", m.cfg.Parallel),
	))
	defer span.End()
	start := time.Now()

	empty := game.EmptyPositions(board)
	if len(empty) == 0 {
		span.RecordError(ErrNoMovesLeft)
		span.SetStatus(codes.Error, "Board is full")
		return Analysis{}, ErrNoMovesLeft
	}

	moves := make([]ScoredMove, len(empty))
	stats := make([]Stats, len(empty))
	searchRoot := func(i int) {
		child := board
		p := empty[i]
		child[p.Row][p.Col] = mark
		s := searcher{root: mark, stats: &stats[i]}
		moves[i] = ScoredMove{Box: p.Box(), Score: s.evaluate(&child, game.Opponent(mark))}
	}

	if m.cfg.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range empty {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				searchRoot(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Search cancelled")
			return Analysis{}, err
		}
	} else {
		for i := range empty {
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "Search cancelled")
				return Analysis{}, err
			}
			searchRoot(i)
		}
	}

	an := Analysis{Mark: mark, Moves: moves, Best: moves[0]}
	for i, mv := range moves {
		an.Stats.add(stats[i])
		if mv.Score > an.Best.Score {
			an.Best = mv
		}
	}

	span.SetAttributes(
		attribute.Int("move.box", an.Best.Box),
		attribute.Int("move.score", an.Best.Score),
		attribute.Int64("search.visited", int64(an.Stats.Visited)),
	)
	searchNodes.Record(ctx, int64(an.Stats.Visited))
	moveDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
		metric.WithAttributes(attribute.String("bot.difficulty", string(Hard))))

	return an, nil
}

// searcher runs one depth-first search over a board it owns exclusively,
// placing and removing marks in place.
type searcher struct {
	root  game.PlayerMark
	stats *Stats
}

func (s *searcher) evaluate(b *game.Board, toMove game.PlayerMark) int {
	s.stats.Visited++

	if w := game.EvaluateWinner(*b); w != game.None {
		s.stats.Terminal++
		if w == s.root {
			return WinScore
		}
		return LossScore
	}
	if game.IsBoardFull(*b) {
		s.stats.Terminal++
		return TieScore
	}

	maximizing := toMove == s.root
	best := WinScore + 1
	if maximizing {
		best = LossScore - 1
	}

	next := game.Opponent(toMove)
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] != game.None {
				continue
			}
			b[r][c] = toMove
			score := s.evaluate(b, next)
			b[r][c] = game.None

			if (maximizing && score > best) || (!maximizing && score < best) {
				best = score
			}
		}
	}
	return best
}
