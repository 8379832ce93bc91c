package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	log, cleanup, err := New(Options{Level: "info", Out: &out, Err: &errOut})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("to-out")
	log.Error("to-err")
	cleanup()

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "to-out")
	assert.NotContains(t, out.String(), "to-err")
	assert.Contains(t, errOut.String(), "to-err")
	assert.NotContains(t, errOut.String(), "to-out")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "najdeno.log")
	var sink bytes.Buffer

	log, cleanup, err := New(Options{Level: "warn", Path: path, Out: &sink, Err: &sink})
	require.NoError(t, err)
	log.Warn("session expired")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session expired")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
