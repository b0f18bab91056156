package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	debug, err := New(true)
	require.NoError(t, err)
	assert.True(t, debug.Desugar().Core().Enabled(zapcore.DebugLevel))

	prod, err := New(false)
	require.NoError(t, err)
	assert.False(t, prod.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Desugar().Core().Enabled(zapcore.InfoLevel))
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Infow("ignored", "key", "value")
	assert.False(t, log.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
