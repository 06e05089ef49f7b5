package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/utils"
)

const predictionsCacheTTL = 5 * time.Minute

type PredictionHandler struct {
	store *store.PredictionStore
	cache *services.CacheService
}

func NewPredictionHandler(predictionStore *store.PredictionStore, cache *services.CacheService) *PredictionHandler {
	return &PredictionHandler{
		store: predictionStore,
		cache: cache,
	}
}

// GetPredictions returns stored game predictions with optional filters
// GET /api/v1/predictions?season=2024&week=9
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	season, ok := parseOptionalInt(c, "season")
	if !ok {
		return
	}
	week, ok := parseOptionalInt(c, "week")
	if !ok {
		return
	}

	cacheKey := services.PredictionsCacheKey(season, week)
	if h.cache != nil {
		var cached []models.Prediction
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	predictions, err := h.store.List(c.Request.Context(), season, week)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch predictions")
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(c.Request.Context(), cacheKey, predictions, predictionsCacheTTL)
	}

	utils.SendSuccess(c, predictions)
}

// parseOptionalInt reads a non-negative integer query parameter, with 0
// meaning unfiltered. Reports false after responding on a bad value.
func parseOptionalInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		utils.SendValidationError(c, "Invalid "+name, "Parameter '"+name+"' must be a non-negative integer")
		return 0, false
	}
	return value, true
}
