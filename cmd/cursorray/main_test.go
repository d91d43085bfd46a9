package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFlag[T any](t *testing.T, flag *T, value T) {
	t.Helper()
	old := *flag
	*flag = value
	t.Cleanup(func() { *flag = old })
}

func TestRunReturnsExitCodes(t *testing.T) {
	t.Run("bad config", func(t *testing.T) {
		setFlag(t, configPath, writeConfig(t, "window: [1, 2"))
		assert.Equal(t, 1, run())
	})
	t.Run("unknown backend", func(t *testing.T) {
		setFlag(t, configPath, "")
		setFlag(t, backend, "vulkan")
		assert.Equal(t, 2, run())
	})
	t.Run("unwritable log file", func(t *testing.T) {
		dir := t.TempDir()
		setFlag(t, configPath, writeConfig(t, "logging:\n  file: "+filepath.Join(dir, "missing", "cursorray.log")+"\n"))
		setFlag(t, backend, "term")
		assert.Equal(t, 1, run())
	})
}

func TestLogWriterClosesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursorray.log")
	out, closeLog, err := logWriter(LoggingConfig{File: path}, true)
	require.NoError(t, err)

	_, err = out.Write([]byte("hit\n"))
	require.NoError(t, err)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hit\n", string(data))

	_, err = out.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
