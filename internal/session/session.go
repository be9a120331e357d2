package session

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var ErrIllegalBotMove = errors.New("bot made an illegal move")

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")

	gamesFinished, _ = meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that reached a win or a tie."),
	)
	movesRejected, _ = meter.Int64Counter("tictactoe.moves.rejected",
		metric.WithDescription("Moves refused by the game model."),
	)
)

// Renderer shows a session to the people playing it.
type Renderer interface {
	Render(board game.Board)
	Rejected(p *player.Player, err error)
	Finished(outcome game.Outcome, winner *player.Player)
}

type nopRenderer struct{}

func (nopRenderer) Render(game.Board) {}
func (nopRenderer) Rejected(*player.Player, error) {}
func (nopRenderer) Finished(game.Outcome, *player.Player) {}

// Config tunes a Session.
type Config struct {
	// Renderer defaults to drawing nothing.
	Renderer Renderer
	// ThinkDelay pauses before each bot move so a human can follow the game.
	ThinkDelay time.Duration
}

// Result describes a finished session.
type Result struct {
	SessionID string
	Outcome   game.Outcome
	// Winner is nil on a tie.
	Winner *player.Player
	// Moves lists the accepted boxes in play order.
	Moves []int
}

// Session is one game between two players. X always moves first.
type Session struct {
	ID       string
	X        *player.Player
	O        *player.Player
	game     *game.Game
	renderer Renderer
	delay    time.Duration
}

// New creates a session where x plays X and o plays O.
func New(x, o *player.Player, cfg Config) *Session {
	r := cfg.Renderer
	if r == nil {
		r = nopRenderer{}
	}
	return &Session{
		ID:       uuid.NewString(),
		X:        x,
		O:        o,
		game:     game.NewGame(),
		renderer: r,
		delay:    cfg.ThinkDelay,
	}
}

func (s *Session) playerFor(mark game.PlayerMark) *player.Player {
	if mark == game.PlayerX {
		return s.X
	}
	return s.O
}

// Play runs the game to the end. A human whose move is refused is asked
// again; a bot that picks a refused box ends the session with
// ErrIllegalBotMove. Errors from a Mover, including context cancellation,
// end the session as well.
func (s *Session) Play(ctx context.Context) (Result, error) {
	ctx, span := tracer.Start(ctx, "session.Play", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.x.id", s.X.ID),
		attribute.String("player.o.id", s.O.ID),
	))
	defer span.End()

	slog.DebugContext(ctx, "Session started", "session.id", s.ID, "player.x", s.X.Name, "player.o", s.O.Name)
	res := Result{SessionID: s.ID}

	for !s.game.IsOver() {
		s.renderer.Render(s.game.Board)

		p := s.playerFor(s.game.CurrentMark())
		box, err := s.turn(ctx, p)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Session aborted")
			return res, err
		}

		if _, err := s.game.ApplyMove(box); err != nil {
			if !errors.Is(err, game.ErrInvalidBox) && !errors.Is(err, game.ErrCellOccupied) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "Unexpected move error")
				return res, err
			}

			movesRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectReason(err))))
			if p.IsBot {
				err = fmt.Errorf("%w: %s chose box %d: %w", ErrIllegalBotMove, p.Name, box, err)
				slog.ErrorContext(ctx, "bot made an illegal move", "session.id", s.ID, "player.id", p.ID, "move.box", box, "error", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, "Illegal bot move")
				return res, err
			}

			slog.InfoContext(ctx, "Move rejected", "session.id", s.ID, "player.id", p.ID, "move.box", box, "error", err)
			s.renderer.Rejected(p, err)
			continue
		}
		res.Moves = append(res.Moves, box)
	}

	res.Outcome = s.game.Outcome
	if w := s.game.Outcome.Winner(); w != game.None {
		res.Winner = s.playerFor(w)
	}

	s.renderer.Render(s.game.Board)
	s.renderer.Finished(res.Outcome, res.Winner)

	gamesFinished.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", res.Outcome.String())))
	span.SetAttributes(attribute.String("session.outcome", res.Outcome.String()), attribute.Int("session.turns", s.game.Turn))
	slog.InfoContext(ctx, "Session finished", "session.id", s.ID, "outcome", res.Outcome.String(), "turns", s.game.Turn)

	return res, nil
}

// turn asks p for its next box.
func (s *Session) turn(ctx context.Context, p *player.Player) (int, error) {
	ctx, span := tracer.Start(ctx, "session.turn", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.id", p.ID),
		attribute.Bool("player.bot", p.IsBot),
		attribute.Int("game.turn", s.game.Turn),
	))
	defer span.End()

	if p.IsBot && s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			span.RecordError(ctx.Err())
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	box, err := p.Mover.ChooseMove(ctx, s.game.Board, s.game.CurrentMark())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Player failed to choose a move")
		return 0, fmt.Errorf("%s failed to choose a move: %w", p.Name, err)
	}
	span.SetAttributes(attribute.Int("move.box", box))
	slog.DebugContext(ctx, "Move chosen", "session.id", s.ID, "player.id", p.ID, "move.box", box)
	return box, nil
}

func rejectReason(err error) string {
	if errors.Is(err, game.ErrInvalidBox) {
		return "invalid_box"
	}
	return "cell_occupied"
}
