package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/api/handlers"
	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
)

// Deps are the wired services the API serves from.
type Deps struct {
	Predictions     *store.PredictionStore
	Recommendations *store.RecommendationStore
	Evals           *store.EvalStore
	Cache           *services.CacheService
	Runner          *services.AnalyticsRunner
	RunLimiter      *services.ClientRateLimiter
	Logger          *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Deps) {
	predictionHandler := handlers.NewPredictionHandler(deps.Predictions, deps.Cache)
	betsHandler := handlers.NewBetsHandler(deps.Recommendations, deps.Evals, deps.Cache)
	pipelineHandler := handlers.NewPipelineHandler(deps.Runner, deps.RunLimiter, deps.Logger)

	// Read endpoints
	group.GET("/predictions", predictionHandler.GetPredictions)
	group.GET("/best-bets", betsHandler.GetBestBets)
	group.GET("/model/eval", betsHandler.GetModelEval)

	// Pipeline control endpoints
	group.POST("/pipeline/run", pipelineHandler.TriggerRun)
	group.GET("/pipeline/status", pipelineHandler.GetStatus)
}
