package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

// RecommendationStore owns the ai_best_bets table. The table is wholly
// derived, so every run replaces it in full inside one transaction.
type RecommendationStore struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewRecommendationStore creates a recommendation store.
func NewRecommendationStore(db *database.DB, logger *logrus.Logger) *RecommendationStore {
	return &RecommendationStore{db: db, logger: logger}
}

// ReplaceAll swaps the stored recommendations for this run's set.
func (s *RecommendationStore) ReplaceAll(ctx context.Context, recommendations []models.BettingRecommendation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.BettingRecommendation{}).Error; err != nil {
			return err
		}
		if len(recommendations) == 0 {
			return nil
		}
		return tx.CreateInBatches(recommendations, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace recommendations: %w", err)
	}

	s.logger.WithField("rows", len(recommendations)).Info("Saved betting recommendations")
	return nil
}

// List returns stored recommendations, optionally filtered by season and
// week (zero means no filter).
func (s *RecommendationStore) List(ctx context.Context, season, week int) ([]models.BettingRecommendation, error) {
	query := s.db.WithContext(ctx).Model(&models.BettingRecommendation{})
	if season > 0 {
		query = query.Where("season = ?", season)
	}
	if week > 0 {
		query = query.Where("week = ?", week)
	}

	var recommendations []models.BettingRecommendation
	if err := query.Order("season, week, home_id, away_id").Find(&recommendations).Error; err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recommendations, nil
}
