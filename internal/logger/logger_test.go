package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapAdapterFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapAdapter(zap.New(core)).
		With(map[string]interface{}{"component": "dispatcher"}).
		WithError(errors.New("boom"))

	l.Warn("decode failed", map[string]interface{}{"raw": "[{"})

	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	assert.Equal(t, "decode failed", e.Message)

	ctx := e.ContextMap()
	assert.Equal(t, "dispatcher", ctx["component"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "[{", ctx["raw"])
}

func TestNewLevels(t *testing.T) {
	assert.True(t, New("debug", "console").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn", "json").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, New("bogus", "console").Core().Enabled(zapcore.InfoLevel))
}

func TestNopAndTestLoggers(t *testing.T) {
	NewNop().Info("dropped", nil)
	NewTestLogger(t).Debug("visible in -v output", map[string]interface{}{"n": 1})
}
