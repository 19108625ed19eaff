package stub

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *MessageStorage

	mu          sync.RWMutex
	failureRate float64
	rand        func() float64
}

func NewHandler(storage *MessageStorage, failureRate float64) *Handler {
	return &Handler{
		storage:     storage,
		failureRate: clampRate(failureRate),
		rand:        rand.Float64,
	}
}

func runIDFrom(c *gin.Context) string {
	if runID := c.GetHeader("X-Run-ID"); runID != "" {
		return runID
	}
	return c.DefaultQuery("run_id", "default")
}

// POST /v1/messages
func (h *Handler) HandleSend(c *gin.Context) {
	runID := runIDFrom(c)

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.RLock()
	fail := h.failureRate > 0 && h.rand() < h.failureRate
	h.mu.RUnlock()

	if fail {
		h.storage.Reject(runID)
		slog.Debug("simulated relay failure",
			slog.String("run_id", runID),
			slog.String("to", req.To),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "simulated relay failure"})
		return
	}

	msg := h.storage.Accept(runID, req, time.Now())

	slog.Debug("message accepted",
		slog.String("run_id", runID),
		slog.String("message_id", msg.ID),
		slog.String("to", req.To),
	)

	c.JSON(http.StatusAccepted, MessageResponse{ID: msg.ID})
}

// GET /api/v1/messages?run_id=...
func (h *Handler) HandleListMessages(c *gin.Context) {
	messages := h.storage.Messages(runIDFrom(c))
	c.JSON(http.StatusOK, MessagesResponse{
		Messages: messages,
		Count:    len(messages),
	})
}

// GET /api/v1/stats?run_id=...
func (h *Handler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.storage.Stats(runIDFrom(c)))
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := runIDFrom(c)

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

// PUT /api/v1/failure
func (h *Handler) HandleSetFailureRate(c *gin.Context) {
	var req FailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rate < 0 || req.Rate > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate must be between 0 and 1"})
		return
	}

	h.mu.Lock()
	h.failureRate = req.Rate
	h.mu.Unlock()

	slog.Info("failure rate updated", slog.Float64("rate", req.Rate))

	c.JSON(http.StatusOK, gin.H{"rate": req.Rate})
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/v1/messages", h.HandleSend)

	api := r.Group("/api/v1")
	api.GET("/messages", h.HandleListMessages)
	api.GET("/stats", h.HandleStats)
	api.POST("/reset", h.HandleReset)
	api.PUT("/failure", h.HandleSetFailureRate)
}

func clampRate(rate float64) float64 {
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	default:
		return rate
	}
}
