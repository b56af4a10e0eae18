package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roach88/amida/internal/config"
)

// NewServer builds the echo instance with middleware and routes mounted.
func NewServer(cfg *config.Config, logger *slog.Logger, ids IDGenerator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestIDMiddleware(ids))
	e.Use(LoggingMiddleware(logger))

	NewHandler(cfg, logger).Register(e)
	return e
}

// Serve runs e on addr until ctx is cancelled, then shuts down gracefully
// within timeout.
func Serve(ctx context.Context, e *echo.Echo, addr string, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
