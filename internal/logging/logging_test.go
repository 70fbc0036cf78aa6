package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutesByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, cleanup, err := New(Options{Level: "info", Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("ledger entry recorded")
	logger.Warn("stats unavailable")
	logger.Error("commit failed")
	cleanup()

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "ledger entry recorded")
	assert.Contains(t, stdout.String(), "stats unavailable")
	assert.NotContains(t, stdout.String(), "commit failed")

	assert.Contains(t, stderr.String(), "commit failed")
	assert.NotContains(t, stderr.String(), "ledger entry recorded")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arsenal.log")
	var stdout, stderr bytes.Buffer
	logger, cleanup, err := New(Options{Level: "debug", File: path, Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)

	logger.Debug("debug line")
	logger.Error("error line")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
	assert.Contains(t, string(data), "error line")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
