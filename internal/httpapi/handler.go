// Package httpapi serves ladder generation, tracing and resolution over
// HTTP with echo.
package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roach88/amida/internal/config"
	"github.com/roach88/amida/internal/ladder"
)

// Handler serves the ladder endpoints.
//
// Each request builds its own Generator, so the handler itself holds no
// mutable state and is safe for concurrent use.
type Handler struct {
	cfg    *config.Config
	logger *slog.Logger
	seed   func() int64
}

// NewHandler creates a handler using cfg for defaults and limits.
func NewHandler(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		logger: logger,
		seed:   func() int64 { return time.Now().UnixNano() },
	}
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.POST("/api/generate", h.Generate)
	e.POST("/api/trace", h.Trace)
	e.POST("/api/resolve", h.Resolve)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Generate builds a new ladder.
func (h *Handler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.checkLimits(req.Columns, req.Levels); err != nil {
		return h.mapError(c, err)
	}

	genReq := ladder.GenerateRequest{
		Columns:      req.Columns,
		Levels:       req.Levels,
		BottomLabels: req.BottomLabels,
		DefaultAtari: req.DefaultAtari,
	}
	if req.RungDensity != nil {
		genReq.RungDensity = *req.RungDensity
	} else {
		h.cfg.DensityFor(&genReq)
	}
	seed := h.seed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	gen := ladder.NewSeededGenerator(seed, h.cfg.Policy())
	l, err := gen.Generate(genReq)
	if err != nil {
		return h.mapError(c, err)
	}
	if l.Levels > h.cfg.Limits.MaxLevels {
		return h.mapError(c, limitError("levels", l.Levels, h.cfg.Limits.MaxLevels))
	}

	id, err := ladder.ID(l)
	if err != nil {
		return h.mapError(c, err)
	}

	h.logger.Debug("generated ladder",
		"request_id", requestID(c),
		"id", id,
		"columns", l.Columns,
		"levels", l.Levels,
		"rungs", len(l.Rungs),
		"seed", seed,
	)
	return c.JSON(http.StatusOK, GenerateResponse{Ladder: l, ID: id, Seed: seed})
}

// Trace follows one token from start to the bottom.
func (h *Handler) Trace(c echo.Context) error {
	var req TraceRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.checkLimits(req.Columns, req.Levels); err != nil {
		return h.mapError(c, err)
	}

	l := ladder.Ladder{Columns: req.Columns, Levels: req.Levels, Rungs: req.Rungs}
	path, err := ladder.Trace(l, req.Start)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, TraceResponse{Path: path, EndIndex: path.End()})
}

// Resolve pairs every entry of a ladder with its result.
func (h *Handler) Resolve(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.checkLimits(req.Ladder.Columns, req.Ladder.Levels); err != nil {
		return h.mapError(c, err)
	}

	outcomes, err := ladder.Resolve(req.Ladder)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, ResolveResponse{Outcomes: outcomes})
}

// limitErr is a request rejected by the configured limits.
type limitErr struct {
	field string
	msg   string
}

func (e *limitErr) Error() string { return e.field + ": " + e.msg }

func limitError(field string, got, limit int) error {
	return &limitErr{field: field, msg: fmt.Sprintf("%d exceeds the limit of %d", got, limit)}
}

func (h *Handler) checkLimits(columns, levels int) error {
	if columns > h.cfg.Limits.MaxColumns {
		return limitError("columns", columns, h.cfg.Limits.MaxColumns)
	}
	if levels > h.cfg.Limits.MaxLevels {
		return limitError("levels", levels, h.cfg.Limits.MaxLevels)
	}
	return nil
}

func badBody(c echo.Context, err error) error {
	msg := "malformed request body"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprintf("%s: %v", msg, he.Message)
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "MALFORMED_BODY"})
}

func (h *Handler) mapError(c echo.Context, err error) error {
	if le, ok := ladder.AsError(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: le.Error(),
			Code:  string(le.Code),
			Field: le.Field,
		})
	}

	var lim *limitErr
	if errors.As(err, &lim) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: lim.Error(),
			Code:  "LIMIT_EXCEEDED",
			Field: lim.field,
		})
	}

	h.logger.Error("internal error", "request_id", requestID(c), "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
