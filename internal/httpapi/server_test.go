package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amida/internal/config"
	"github.com/roach88/amida/internal/testutil"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewServer(config.Default(), logger, testutil.NewFixedIDGenerator(""))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, e, "127.0.0.1:0", time.Second, logger)
	}()

	require.Eventually(t, func() bool {
		return e.ListenerAddr() != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewServer(config.Default(), logger, testutil.NewFixedIDGenerator(""))

	err = Serve(context.Background(), e, ln.Addr().String(), time.Second, logger)
	assert.Error(t, err)
}
