package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/utils"
)

const bestBetsCacheTTL = 5 * time.Minute

type BetsHandler struct {
	recommendations *store.RecommendationStore
	evals           *store.EvalStore
	cache           *services.CacheService
}

func NewBetsHandler(recommendations *store.RecommendationStore, evals *store.EvalStore, cache *services.CacheService) *BetsHandler {
	return &BetsHandler{
		recommendations: recommendations,
		evals:           evals,
		cache:           cache,
	}
}

// GetBestBets returns the current betting recommendations
// GET /api/v1/best-bets?season=2024&week=9
func (h *BetsHandler) GetBestBets(c *gin.Context) {
	season, ok := parseOptionalInt(c, "season")
	if !ok {
		return
	}
	week, ok := parseOptionalInt(c, "week")
	if !ok {
		return
	}

	// The table is small and fully replaced each run; only the
	// unfiltered view is worth caching.
	unfiltered := season == 0 && week == 0
	cacheKey := services.BestBetsCacheKey()
	if h.cache != nil && unfiltered {
		var cached []models.BettingRecommendation
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	bets, err := h.recommendations.List(c.Request.Context(), season, week)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch betting recommendations")
		return
	}

	if h.cache != nil && unfiltered {
		_ = h.cache.Set(c.Request.Context(), cacheKey, bets, bestBetsCacheTTL)
	}

	utils.SendSuccess(c, bets)
}

// GetModelEval returns the latest training run's metrics
// GET /api/v1/model/eval
func (h *BetsHandler) GetModelEval(c *gin.Context) {
	eval, err := h.evals.Latest(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch model evaluation")
		return
	}
	if eval == nil {
		utils.SendNotFound(c, "No model evaluation recorded yet")
		return
	}
	utils.SendSuccess(c, eval)
}
