package session

import (
	"context"
	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/player/mock"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func seededRandom(name string, base uint64) Contestant {
	return Contestant{Name: name, NewMover: func(i int) (player.Mover, error) {
		return bot.NewRandomBot(base + uint64(i)<<32), nil
	}}
}

func TestArenaMinimaxMirror(t *testing.T) {
	hard := bot.NewMinimaxBot(bot.MinimaxConfig{})
	a, err := NewArena(Shared("A", hard), Shared("B", hard), ArenaConfig{Games: 4, Workers: 2})
	require.NoError(t, err)

	tally, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, tally.Games)
	assert.Equal(t, 4, tally.Ties)
	assert.Equal(t, map[string]int{"A": 0, "B": 0}, tally.Wins)
	require.Len(t, tally.Moves, 4)
	for _, moves := range tally.Moves {
		assert.Equal(t, tally.Moves[0], moves)
		assert.Len(t, moves, 9)
	}
}

func TestArenaMinimaxAgainstRandom(t *testing.T) {
	minimax := Shared("minimax", bot.NewMinimaxBot(bot.MinimaxConfig{}))

	a, err := NewArena(minimax, seededRandom("random", 11), ArenaConfig{Games: 10, SwapMarks: true})
	require.NoError(t, err)

	tally, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, tally.Games)
	assert.Equal(t, 10, tally.XWins+tally.OWins+tally.Ties)
	assert.Zero(t, tally.Wins["random"])
	assert.Equal(t, 10, tally.Wins["minimax"]+tally.Ties)
}

func TestArenaSeededGamesDoNotDependOnWorkers(t *testing.T) {
	run := func(workers int) Tally {
		a, err := NewArena(seededRandom("p1", 7), seededRandom("p2", 8), ArenaConfig{Games: 16, Workers: workers, SwapMarks: true})
		require.NoError(t, err)
		tally, err := a.Run(context.Background())
		require.NoError(t, err)
		return tally
	}

	sequential := run(1)
	for _, workers := range []int{4, 16} {
		parallel := run(workers)
		assert.Equal(t, sequential.Moves, parallel.Moves, "workers=%d", workers)
		assert.Equal(t, sequential.Wins, parallel.Wins, "workers=%d", workers)
	}
}

func TestNewArenaValidates(t *testing.T) {
	random := bot.NewRandomBot(1)

	_, err := NewArena(Shared("A", random), Shared("B", random), ArenaConfig{Games: 0})
	assert.Error(t, err)

	_, err = NewArena(Shared("A", random), Shared("B", random), ArenaConfig{Games: 1, Workers: -1})
	assert.Error(t, err)

	_, err = NewArena(Shared("A", random), Shared("A", random), ArenaConfig{Games: 1})
	assert.Error(t, err)

	_, err = NewArena(Contestant{Name: "A"}, Shared("B", random), ArenaConfig{Games: 1})
	assert.Error(t, err)
}

func TestArenaStopsOnError(t *testing.T) {
	errBoom := errors.New("boom")

	ctrl := gomock.NewController(t)
	broken := mock.NewMockMover(ctrl)
	broken.EXPECT().ChooseMove(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errBoom).AnyTimes()
	idle := mock.NewMockMover(ctrl)
	idle.EXPECT().ChooseMove(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil).AnyTimes()

	a, err := NewArena(Shared("broken", broken), Shared("idle", idle), ArenaConfig{Games: 3, Workers: 1})
	require.NoError(t, err)

	tally, err := a.Run(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, tally.Games)
}

func TestArenaMoverConstructionError(t *testing.T) {
	errNoBot := errors.New("no bot")
	failing := Contestant{Name: "failing", NewMover: func(int) (player.Mover, error) { return nil, errNoBot }}

	a, err := NewArena(failing, Shared("minimax", bot.NewMinimaxBot(bot.MinimaxConfig{})), ArenaConfig{Games: 2})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	assert.ErrorIs(t, err, errNoBot)
}
