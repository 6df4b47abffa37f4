package logger

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"ProductionJSON", Config{Level: "info", Format: "json"}},
		{"DevelopmentConsole", Config{Level: "debug", Format: "console"}},
		{"WarnDefaultFormat", Config{Level: "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNewLevels(t *testing.T) {
	l, err := New(&Config{Level: "error", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.WarnLevel))
	assert.True(t, l.Core().Enabled(zap.ErrorLevel))

	_, err = New(&Config{Level: "loud"})
	assert.ErrorContains(t, err, `invalid log level "loud"`)

	_, err = New(&Config{Level: "info", Format: "xml"})
	assert.EqualError(t, err, `invalid log format "xml"`)
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)
	c.Locals(RayIDKey, "abc-123")

	WithRayID(zap.New(core), c).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc-123", logs.All()[0].ContextMap()["ray_id"])
}

func TestZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	fn := Zap(zap.New(core))

	fn(LevelInfo, "ReconEngine", "started")
	fn(LevelWarning, "ReconEngine", "skipped")
	fn(LevelError, "ValidationEngine", "failed")
	fn("debug", "ValidationEngine", "trace")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, zap.DebugLevel, entries[3].Level)
	assert.Equal(t, "ReconEngine", entries[0].ContextMap()["component"])
}

func TestJournal(t *testing.T) {
	j := NewJournal()
	var seen []string
	fn := Tee(j.Log, nil, func(_ Level, component, _ string) { seen = append(seen, component) })

	fn(LevelInfo, "Main", "one")
	fn(LevelError, "Main", "two")

	entries := j.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, LevelError, entries[1].Level)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, []string{"Main", "Main"}, seen)
}

func TestOr(t *testing.T) {
	assert.NotPanics(t, func() { Or(nil)(LevelInfo, "x", "y") })
}
