package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = New(Options{Level: "info"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = New(Options{Level: "error", Debug: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	l, err := New(Options{File: path})
	require.NoError(t, err)

	l.Warn("store unavailable")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "store unavailable")
}
