package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

// PredictionStore owns the cfb_predictions table. Writes are upserts by
// the natural key (season, week, home_id, away_id): an existing key gets
// its four numeric fields overwritten, a new key is inserted, and keys no
// longer produced are left alone. The whole batch is one transaction
// under an exclusive section, so concurrent runs can never interleave a
// half-applied batch.
type PredictionStore struct {
	db     *database.DB
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewPredictionStore creates a prediction store.
func NewPredictionStore(db *database.DB, logger *logrus.Logger) *PredictionStore {
	return &PredictionStore{db: db, logger: logger}
}

// UpsertBatch writes one run's predictions. A mid-batch failure rolls the
// transaction back and the stored table is exactly what it was before.
func (s *PredictionStore) UpsertBatch(ctx context.Context, predictions []models.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "season"}, {Name: "week"}, {Name: "home_id"}, {Name: "away_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"home_win_pred", "home_win_prob", "point_spread_pred", "total_points_pred", "updated_at",
			}),
		}).CreateInBatches(predictions, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert predictions: %w", err)
	}

	s.logger.WithField("rows", len(predictions)).Info("Merged predictions")
	return nil
}

// List returns stored predictions, optionally filtered by season and
// week (zero means no filter), newest first within a week by key order.
func (s *PredictionStore) List(ctx context.Context, season, week int) ([]models.Prediction, error) {
	query := s.db.WithContext(ctx).Model(&models.Prediction{})
	if season > 0 {
		query = query.Where("season = ?", season)
	}
	if week > 0 {
		query = query.Where("week = ?", week)
	}

	var predictions []models.Prediction
	if err := query.Order("season, week, home_id, away_id").Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}
