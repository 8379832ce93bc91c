package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	require.NoError(t, err)
	b, err := generatePassword(16)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestPrintAccount(t *testing.T) {
	var buf bytes.Buffer
	printAccount(&buf, "root", "s3cret")
	assert.True(t, strings.Contains(buf.String(), "Username: root"))
	assert.Contains(t, buf.String(), "Password: s3cret")
}

func TestRunArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage: najdeno-dev")

	assert.Equal(t, exitUsage, run(context.Background(), []string{"extra"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unexpected argument: extra")

	assert.Equal(t, exitFail, run(context.Background(), []string{"-v", "loud"}, &stdout, &stderr))
}

func TestRunStopsOnCancel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dev.log")
	ctx, cancel := context.WithCancel(context.Background())

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"-a", "127.0.0.1:0", "-l", logPath, "-u", "root"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		data, _ := os.ReadFile(logPath)
		return strings.Contains(string(data), "server started")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case code := <-done:
		assert.Equal(t, exitOK, code)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server stopped")
}

func TestRunListenFailureFlushesLog(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	logPath := filepath.Join(t.TempDir(), "dev.log")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-a", busy.Addr().String(), "-l", logPath}, &stdout, &stderr)
	assert.Equal(t, exitFail, code)
	assert.NotContains(t, stdout.String(), "Admin account created")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed to listen")
}
