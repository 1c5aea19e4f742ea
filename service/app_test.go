package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerGracefulShutdown(t *testing.T) {
	cfg := testConfig(t)
	srv, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := fmt.Sprintf("http://%s", listener.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	// Make a request to verify the server is running.
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/about")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && len(body) > 0
	}, 2*time.Second, 20*time.Millisecond)

	// Initiate graceful shutdown.
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get(url + "/")
	assert.Error(t, err)
}

func TestNewServerBadDatabasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBPath = t.TempDir() // a directory, not a file

	_, err := NewServer(cfg, zap.NewNop())
	assert.Error(t, err)
}
