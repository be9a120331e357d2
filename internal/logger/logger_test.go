package logger

import (
	"bytes"
	"context"
	"ctchen222/tictactoe/internal/config"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink closed")
}

func TestMultiHandlerLevels(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warn := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	log := slog.New(NewMultiHandler(debug, warn))
	log.Debug("searching", "move.box", 5)
	log.Warn("bot rejected", "move.box", 7)

	assert.Contains(t, debugBuf.String(), "searching")
	assert.Contains(t, debugBuf.String(), "bot rejected")
	assert.NotContains(t, warnBuf.String(), "searching")
	assert.Contains(t, warnBuf.String(), "move.box=7")
}

func TestMultiHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandlerAttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)

	slog.New(h).With("session.id", "abc").WithGroup("move").Info("played", "box", 3)

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "session.id=abc")
		assert.Contains(t, out, "move.box=3")
	}
}

func TestMultiHandlerKeepsGoingOnError(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)
	h := NewMultiHandler(failingHandler{text}, text)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "played", 0)
	err := h.Handle(context.Background(), r)

	assert.EqualError(t, err, "sink closed")
	assert.Contains(t, buf.String(), "played")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "tictactoe.log")
	closeFn, err := Init(&config.Config{LogLevel: "info", LogFile: path})
	require.NoError(t, err)

	slog.Info("Session finished", "outcome", "Tie")
	slog.Debug("hidden")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "outcome=Tie")
	assert.NotContains(t, string(data), "hidden")
}
