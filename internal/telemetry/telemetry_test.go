package telemetry

import (
	"context"
	"ctchen222/tictactoe/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitOtelDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitOtel(context.Background(), config.Telemetry{ServiceName: "tictactoe"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitOtelTraceFile(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	path := filepath.Join(t.TempDir(), "traces.json")
	shutdown, err := InitOtel(context.Background(), config.Telemetry{ServiceName: "tictactoe", TraceFile: path})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "session.Play")
	span.End()

	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name": "session.Play"`)
	assert.Contains(t, string(data), "tictactoe")
}

func TestInitOtelBadTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "traces.json")
	_, err := InitOtel(context.Background(), config.Telemetry{ServiceName: "tictactoe", TraceFile: path})
	assert.Error(t, err)
}
