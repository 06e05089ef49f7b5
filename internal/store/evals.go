package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

// EvalStore appends one model_evals row per run. Evaluations are
// append-only history; nothing updates or deletes them.
type EvalStore struct {
	db *database.DB
}

// NewEvalStore creates an eval store.
func NewEvalStore(db *database.DB) *EvalStore {
	return &EvalStore{db: db}
}

// Save records one run's evaluation metrics.
func (s *EvalStore) Save(ctx context.Context, eval *models.ModelEval) error {
	if err := s.db.WithContext(ctx).Create(eval).Error; err != nil {
		return fmt.Errorf("failed to save model eval: %w", err)
	}
	return nil
}

// Latest returns the most recent evaluation row, or nil when none exist.
func (s *EvalStore) Latest(ctx context.Context) (*models.ModelEval, error) {
	var eval models.ModelEval
	err := s.db.WithContext(ctx).Order("id DESC").First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest eval: %w", err)
	}
	return &eval, nil
}
