package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromEnv(t *testing.T) {
	t.Run("unset defaults to info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		assert.Equal(t, zapcore.InfoLevel, levelFromEnv())
	})

	t.Run("debug", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		assert.Equal(t, zapcore.DebugLevel, levelFromEnv())
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "WARN")
		assert.Equal(t, zapcore.WarnLevel, levelFromEnv())
	})

	t.Run("garbage falls back to info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		assert.Equal(t, zapcore.InfoLevel, levelFromEnv())
	})
}

func TestZapLoggerRespectsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	log, err := NewZapLogger()
	require.NoError(t, err)

	zl, ok := log.(*ZapLogger)
	require.True(t, ok)
	assert.False(t, zl.Logger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zl.Logger().Core().Enabled(zapcore.ErrorLevel))
}
