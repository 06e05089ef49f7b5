package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/utils"
)

type PipelineHandler struct {
	runner  *services.AnalyticsRunner
	limiter *services.ClientRateLimiter
	logger  *logrus.Logger
}

func NewPipelineHandler(runner *services.AnalyticsRunner, limiter *services.ClientRateLimiter, logger *logrus.Logger) *PipelineHandler {
	return &PipelineHandler{
		runner:  runner,
		limiter: limiter,
		logger:  logger,
	}
}

// TriggerRun starts a full analytics cycle in the background
// POST /api/v1/pipeline/run
func (h *PipelineHandler) TriggerRun(c *gin.Context) {
	if err := h.limiter.Allow(c.ClientIP()); err != nil {
		utils.SendError(c, http.StatusTooManyRequests, utils.NewAppError(utils.ErrCodeUnavailable, "Too many pipeline requests", err.Error()))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := h.runner.RunCycle(ctx); err != nil {
			h.logger.Errorf("Manual pipeline run failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Pipeline run started",
	})
}

// GetStatus returns the runner's schedule and last-run state
// GET /api/v1/pipeline/status
func (h *PipelineHandler) GetStatus(c *gin.Context) {
	utils.SendSuccess(c, h.runner.Status())
}
