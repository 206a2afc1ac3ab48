package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreLogging undoes the global logger changes setupLogging makes
func restoreLogging(t *testing.T) {
	t.Helper()
	prevSlog, prevOut, prevFlags := slog.Default(), log.Writer(), log.Flags()
	t.Cleanup(func() {
		slog.SetDefault(prevSlog)
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	restoreLogging(t)
	path := filepath.Join(t.TempDir(), "logs", "dash.log")

	logFile, logger := setupLogging(false, path, "run-1")
	assert.Nil(t, logFile)
	require.NotNil(t, logger)
	assert.Equal(t, io.Discard, log.Writer())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file when disabled")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	restoreLogging(t)
	path := filepath.Join(t.TempDir(), "logs", "dash.log")

	logFile, logger := setupLogging(true, path, "run-1")
	require.NotNil(t, logFile)
	defer logFile.Close()

	logger.Info("structured message", "panel", "logs")
	log.Println("stdlib message")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "structured message")
	assert.Contains(t, string(data), "panel=logs")
	assert.Contains(t, string(data), "run=run-1")
	assert.Contains(t, string(data), "stdlib message")
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLogging(t)
	path := filepath.Join(t.TempDir(), "dash.log")

	// Write just over the limit
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o644))

	logFile, _ := setupLogging(true, path, "")
	require.NotNil(t, logFile)
	defer logFile.Close()

	old, err := os.Stat(path + ".old")
	require.NoError(t, err, "previous log kept")
	assert.EqualValues(t, maxLogSize+1, old.Size())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	restoreLogging(t)
	logFile, _ := setupLogging(true, filepath.Join(t.TempDir(), "dash.log"), "")
	require.NotNil(t, logFile)
	defer logFile.Close()

	output := log.Writer()
	assert.NotEqual(t, os.Stdout, output)
	assert.NotEqual(t, os.Stderr, output)
}

func TestSetupLogging_UnwritablePathDiscards(t *testing.T) {
	restoreLogging(t)
	dir := t.TempDir()
	// A regular file where the log directory should be
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logFile, logger := setupLogging(true, filepath.Join(blocker, "dash.log"), "")
	assert.Nil(t, logFile)
	require.NotNil(t, logger)
	assert.Equal(t, io.Discard, log.Writer())
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := newRunID(), newRunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
