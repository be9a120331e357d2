package player

import (
	"context"
	"ctchen222/tictactoe/internal/game"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mover.go -package=mock ctchen222/tictactoe/internal/player Mover

// Mover decides which box (1-9) to mark next. Bots and the terminal
// prompt both implement it.
type Mover interface {
	ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error)
}

// Player represents one side of a session.
type Player struct {
	ID    string
	Name  string
	IsBot bool
	Mover Mover
}

// NewHuman creates a human player backed by m.
func NewHuman(name string, m Mover) *Player {
	return &Player{ID: uuid.NewString(), Name: name, Mover: m}
}

// NewBot creates a bot player backed by m.
func NewBot(name string, m Mover) *Player {
	return &Player{ID: uuid.NewString(), Name: name, IsBot: true, Mover: m}
}

func (p *Player) String() string {
	return p.Name
}
