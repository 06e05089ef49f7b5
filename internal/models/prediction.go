package models

import "time"

// Prediction holds the model's three outputs for one upcoming game. The
// natural key is (season, week, home, away); re-running the pipeline
// overwrites the four numeric fields for an existing key and inserts new
// keys, but never deletes rows for keys no longer produced.
type Prediction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Season          int       `gorm:"uniqueIndex:idx_predictions_key" json:"season"`
	Week            int       `gorm:"uniqueIndex:idx_predictions_key" json:"week"`
	HomeID          int64     `gorm:"uniqueIndex:idx_predictions_key" json:"home_id"`
	AwayID          int64     `gorm:"uniqueIndex:idx_predictions_key" json:"away_id"`
	HomeWinPred     float64   `json:"home_win_pred"`
	HomeWinProb     float64   `json:"home_win_prob"`
	PointSpreadPred float64   `json:"point_spread_pred"`
	TotalPointsPred float64   `json:"total_points_pred"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Prediction) TableName() string {
	return "cfb_predictions"
}

// ModelEval records one training run's headline metrics over completed
// games. Metrics are nullable: a single-class training set yields no
// accuracy/AUC/log-loss.
type ModelEval struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RunID       string    `gorm:"index" json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Accuracy    *float64  `json:"accuracy,omitempty"`
	AUC         *float64  `json:"auc,omitempty"`
	LogLoss     *float64  `json:"log_loss,omitempty"`
	RowsTrained int       `json:"rows_trained"`
}

// TableName specifies the table name for GORM
func (ModelEval) TableName() string {
	return "model_evals"
}
