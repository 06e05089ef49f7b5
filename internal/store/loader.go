package store

import (
	"context"
	"fmt"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/internal/pipeline"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

// Loader reads the full raw tables for the requested seasons into memory
// before a run. The transform chain does no further I/O: its output is a
// pure function of this snapshot.
type Loader struct {
	db *database.DB
}

// NewLoader creates a raw-table loader.
func NewLoader(db *database.DB) *Loader {
	return &Loader{db: db}
}

// LoadInputs snapshots games, rankings, drives, plays and market lines.
// An empty seasons slice loads everything. Games come back in
// (season, week, id) order, which fixes the chronological ordering the
// rolling-form windows depend on.
func (l *Loader) LoadInputs(ctx context.Context, seasons []int) (*pipeline.Inputs, error) {
	in := &pipeline.Inputs{}

	gamesQuery := l.db.WithContext(ctx).Order("season, week, id")
	if len(seasons) > 0 {
		gamesQuery = gamesQuery.Where("season IN ?", seasons)
	}
	if err := gamesQuery.Find(&in.Games).Error; err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	rankingsQuery := l.db.WithContext(ctx)
	if len(seasons) > 0 {
		rankingsQuery = rankingsQuery.Where("season IN ?", seasons)
	}
	if err := rankingsQuery.Find(&in.Rankings).Error; err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}

	drivesQuery := l.db.WithContext(ctx)
	if len(seasons) > 0 {
		drivesQuery = drivesQuery.Where("season IN ?", seasons)
	}
	if err := drivesQuery.Find(&in.Drives).Error; err != nil {
		return nil, fmt.Errorf("failed to load drives: %w", err)
	}

	playsQuery := l.db.WithContext(ctx)
	if len(seasons) > 0 {
		playsQuery = playsQuery.Where("season IN ?", seasons)
	}
	if err := playsQuery.Find(&in.Plays).Error; err != nil {
		return nil, fmt.Errorf("failed to load plays: %w", err)
	}

	linesQuery := l.db.WithContext(ctx)
	if len(seasons) > 0 {
		linesQuery = linesQuery.Where("season IN ?", seasons)
	}
	if err := linesQuery.Find(&in.Lines).Error; err != nil {
		return nil, fmt.Errorf("failed to load market lines: %w", err)
	}

	return in, nil
}

// Migrate creates or updates every table the engine reads and writes.
func Migrate(db *database.DB) error {
	if err := db.AutoMigrate(
		&models.Game{},
		&models.Ranking{},
		&models.Drive{},
		&models.Play{},
		&models.MarketLine{},
		&models.Prediction{},
		&models.BettingRecommendation{},
		&models.ModelEval{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}
	return nil
}
