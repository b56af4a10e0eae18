package httpapi

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	headerRequestID = "X-Request-Id"
	ctxRequestID    = "request_id"
)

// RequestIDMiddleware ensures every request has an X-Request-Id. An incoming
// header is kept; otherwise ids supplies a fresh one.
func RequestIDMiddleware(ids IDGenerator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = ids.Generate()
			}
			c.Response().Header().Set(headerRequestID, id)
			c.Set(ctxRequestID, id)
			return next(c)
		}
	}
}

// LoggingMiddleware logs each request with structured fields.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("request",
				"request_id", requestID(c),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

func requestID(c echo.Context) string {
	id, _ := c.Get(ctxRequestID).(string)
	return id
}
