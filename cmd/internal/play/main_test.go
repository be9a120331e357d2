package play

import (
	"bytes"
	"context"
	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/terminal"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFactory records the requested difficulties and always builds a
// minimax bot so every game is deterministic.
type recordingFactory struct {
	asked []bot.Difficulty
}

func (f *recordingFactory) newBot(cfg bot.Config) (bot.Bot, error) {
	f.asked = append(f.asked, cfg.Difficulty)
	return bot.NewMinimaxBot(bot.MinimaxConfig{}), nil
}

func lines(ss ...string) string {
	return strings.Join(ss, "\n") + "\n"
}

func TestLoop(t *testing.T) {
	// Against minimax, a human trying boxes 1, 2, 3, ... in order loses after
	// four lines when moving first and after six lines when moving second.
	humanFirstMoves := []string{"1", "2", "3", "4"}
	humanSecondMoves := []string{"1", "2", "3", "4", "5", "6"}

	tests := []struct {
		name         string
		fixed        bot.Difficulty
		input        []string
		wantPlayed   int
		wantAsked    []bot.Difficulty
		wantSmartQ   int
		wantBotFirst bool
	}{
		{
			name:       "Smart bot is hard",
			input:      append(append([]string{"y", "y"}, humanFirstMoves...), "n"),
			wantPlayed: 1,
			wantAsked:  []bot.Difficulty{bot.Hard},
			wantSmartQ: 1,
		},
		{
			name:         "Not smart is easy, then play again going second",
			input:        append(append(append(append([]string{"y", "n"}, humanFirstMoves...), "y", "n", "y"), humanSecondMoves...), "n"),
			wantPlayed:   2,
			wantAsked:    []bot.Difficulty{bot.Easy, bot.Hard},
			wantSmartQ:   2,
			wantBotFirst: false,
		},
		{
			name:         "Fixed difficulty skips the question",
			fixed:        bot.Medium,
			input:        append(append([]string{"n"}, humanSecondMoves...), "no thanks"),
			wantPlayed:   1,
			wantAsked:    []bot.Difficulty{bot.Medium},
			wantSmartQ:   0,
			wantBotFirst: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			console := terminal.New(strings.NewReader(lines(tt.input...)), &out, terminal.Options{NoClear: true})
			f := &recordingFactory{}

			played, err := loop(context.Background(), console, &config.Config{}, tt.fixed, f.newBot)
			require.NoError(t, err)

			s := out.String()
			assert.Equal(t, tt.wantPlayed, played)
			assert.Equal(t, tt.wantAsked, f.asked)
			assert.Equal(t, tt.wantPlayed, strings.Count(s, "** Bot Won **"))
			assert.Equal(t, tt.wantPlayed, strings.Count(s, "Would you like to play again? (y/n): "))
			assert.Equal(t, tt.wantSmartQ, strings.Count(s, "Should the bot be smart?"))
			assert.True(t, strings.HasPrefix(s, "========= Tic-Tac-Toe ==========\n"))

			// The bot opens in box 1 when it moves first, so the board shown
			// at the human's first prompt already has an X there.
			beforePrompt := s[:strings.Index(s, "Box: ")]
			lastBoard := beforePrompt[strings.LastIndex(beforePrompt, "┌"):]
			assert.Equal(t, tt.wantBotFirst, strings.Contains(lastBoard, "│ X │ 2 │ 3 │"), lastBoard)
		})
	}
}

func TestLoopHumanSecondMarks(t *testing.T) {
	var out bytes.Buffer
	console := terminal.New(strings.NewReader(lines("n", "y", "1", "2", "3", "4", "5", "6", "n")), &out, terminal.Options{NoClear: true})
	f := &recordingFactory{}

	played, err := loop(context.Background(), console, &config.Config{}, "", f.newBot)
	require.NoError(t, err)
	assert.Equal(t, 1, played)

	// Box 1 is taken by the bot's X, so the human's first try is refused and
	// the human's marks are O.
	s := out.String()
	assert.Contains(t, s, "[Invalid input] box is already filled: 1")
	assert.Contains(t, s, "│ X │ O │")
}

func TestLoopStopsAtEndOfInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPlayed int
	}{
		{name: "Before the smart question", input: "y\n", wantPlayed: 0},
		{name: "During a game", input: "y\ny\n1\n", wantPlayed: 0},
		{name: "At the play again question", input: lines("y", "y", "1", "2", "3", "4"), wantPlayed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := terminal.New(strings.NewReader(tt.input), io.Discard, terminal.Options{NoClear: true})
			played, err := loop(context.Background(), console, &config.Config{}, "", (&recordingFactory{}).newBot)
			assert.ErrorIs(t, err, io.EOF)
			assert.True(t, quit(err))
			assert.Equal(t, tt.wantPlayed, played)
		})
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	console := terminal.New(strings.NewReader(lines("y", "y")), io.Discard, terminal.Options{})
	played, err := loop(ctx, console, &config.Config{}, "", (&recordingFactory{}).newBot)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, quit(err))
	assert.Zero(t, played)
}

func TestQuit(t *testing.T) {
	assert.True(t, quit(fmt.Errorf("You failed to choose a move: %w", io.EOF)))
	assert.False(t, quit(errors.New("bot made an illegal move")))
}
