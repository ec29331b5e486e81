package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithZap(zap.New(core))

	l.Warn("tick protocol violation", errors.New("overlap"), map[string]interface{}{
		"scope": "server",
	}, map[string]interface{}{
		"scope": "dimension",
		"id":    -1,
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "tick protocol violation", entries[0].Message)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "overlap", ctx["error"])
	assert.Equal(t, "dimension", ctx["scope"])
	assert.EqualValues(t, -1, ctx["id"])
}

func TestLoggerWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewWithZap(zap.New(core)).With(map[string]interface{}{"component": "exporter"})

	l.Debug("dropped", nil)
	l.Info("kept", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "exporter", entries[0].ContextMap()["component"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		Debug:     zapcore.DebugLevel,
		Info:      zapcore.InfoLevel,
		Warning:   zapcore.WarnLevel,
		Warn:      zapcore.WarnLevel,
		Error:     zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestFXModule(t *testing.T) {
	var l *Logger
	app := fxtest.New(t,
		fx.Supply(Config{Level: Debug, ServiceName: "test"}),
		FXModule,
		fx.Populate(&l),
	)
	app.RequireStart()
	require.NotNil(t, l)
	assert.True(t, l.Zap.Core().Enabled(zapcore.DebugLevel))
	require.NoError(t, app.Stop(context.Background()))
}
