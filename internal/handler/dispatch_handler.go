package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/dispatch"
)

type TickRunner interface {
	Run(ctx context.Context, now time.Time) (*dispatch.TickResult, error)
}

type DispatchHandler struct {
	runner TickRunner
	clock  clockwork.Clock
}

func NewDispatchHandler(runner TickRunner, clock clockwork.Clock) *DispatchHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DispatchHandler{
		runner: runner,
		clock:  clock,
	}
}

// HandleDispatch runs one tick. The optional now query parameter (RFC3339)
// evaluates the tick at a virtual instant.
func (h *DispatchHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	now := h.clock.Now()
	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now time format, expected RFC3339"})
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	if runID := c.GetHeader("X-Run-ID"); runID != "" {
		ctx = logging.WithRunID(ctx, logging.ValidateAndExtractRequestID(runID))
	}

	result, err := h.runner.Run(ctx, now)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dispatch.ErrCandidateLoad) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
