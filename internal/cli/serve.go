package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/httpapi"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string

	// IDGenerator allows overriding the request ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator httpapi.IDGenerator
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ladder HTTP API",
		Long: `Start the HTTP API.

Endpoints:
  GET  /healthz
  POST /api/generate
  POST /api/trace
  POST /api/resolve

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  amida serve
  amida serve --addr 127.0.0.1:9000 --config amida.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := opts.newLogger(cfg, cmd.ErrOrStderr())

	addr := cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	timeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	ids := opts.IDGenerator
	if ids == nil {
		ids = httpapi.UUIDv7Generator{}
	}
	e := httpapi.NewServer(cfg, logger, ids)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	if err := httpapi.Serve(ctx, e, addr, timeout, logger); err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
