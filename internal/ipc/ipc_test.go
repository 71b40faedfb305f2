package ipc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/webnav/internal/logging"
)

func testSocketPath(t *testing.T) string {
	t.Helper()
	// Socket paths have a low length limit on some platforms; keep it short.
	return filepath.Join(t.TempDir(), "ipc.sock")
}

func TestSendToRunningInstance(t *testing.T) {
	path := testSocketPath(t)

	received := make(chan []string, 1)
	server, err := Listen(path, func(args []string) {
		received <- args
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(ctx)
	}()

	ok, err := SendToRunningInstance(path, []string{"open", "example.com"})
	require.NoError(t, err)
	assert.True(t, ok)

	select {
	case args := <-received:
		assert.Equal(t, []string{"open", "example.com"}, args)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive arguments")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSendWithoutInstance(t *testing.T) {
	ok, err := SendToRunningInstance(testSocketPath(t), []string{"open"})
	require.NoError(t, err)
	assert.False(t, ok, "no running instance must not be an error")
}

func TestListenRefusesSecondInstance(t *testing.T) {
	path := testSocketPath(t)

	first, err := Listen(path, func([]string) {}, nil)
	require.NoError(t, err)
	defer first.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = first.Serve(ctx) }()

	_, err = Listen(path, func([]string) {}, nil)
	assert.Error(t, err)
}

func TestListenRemovesStaleSocket(t *testing.T) {
	path := testSocketPath(t)

	// A leftover socket file with nobody listening must not block startup.
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	server, err := Listen(path, func([]string) {}, nil)
	require.NoError(t, err)
	assert.NoError(t, server.Close())
}

func TestSocketPath(t *testing.T) {
	assert.Equal(t, "custom.sock", filepath.Base(SocketPath("custom.sock")))
	assert.Contains(t, filepath.Base(SocketPath("")), "webnav-")
}
