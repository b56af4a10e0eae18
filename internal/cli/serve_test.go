package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_StopsOnContextCancel(t *testing.T) {
	t.Setenv("AMIDA_CONFIG", "")

	ctx, cancel := context.WithCancel(context.Background())
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServe_ListenErrorIsFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = execute(t, "serve", "--addr", ln.Addr().String())
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestServe_BadShutdownTimeout(t *testing.T) {
	cfgPath := writeTemp(t, "amida.yaml", "server:\n  shutdown_timeout: soon\n")

	_, err := execute(t, "--config", cfgPath, "serve")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
