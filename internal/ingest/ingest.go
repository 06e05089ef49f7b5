package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

const insertBatchSize = 500

// Source fetches raw college football data for one season.
type Source interface {
	GetGames(ctx context.Context, year int) ([]models.Game, error)
	GetRankings(ctx context.Context, year int) ([]models.Ranking, error)
	GetDrives(ctx context.Context, year, maxWeeks int) ([]models.Drive, error)
	GetPlays(ctx context.Context, year, maxWeeks int) ([]models.Play, error)
	GetLines(ctx context.Context, year int) ([]models.MarketLine, error)
}

// Service pulls seasons of raw data from a Source and upserts them into
// the raw tables. Re-ingesting a season refreshes rows in place; nothing
// is ever deleted, so partial upstream outages leave prior data intact.
type Service struct {
	db       *gorm.DB
	source   Source
	maxWeeks int
	logger   *logrus.Logger
}

func NewService(db *gorm.DB, source Source, maxWeeks int, logger *logrus.Logger) *Service {
	if maxWeeks <= 0 {
		maxWeeks = 16
	}
	return &Service{
		db:       db,
		source:   source,
		maxWeeks: maxWeeks,
		logger:   logger,
	}
}

// IngestSeasons fetches and stores every dataset for the given seasons.
// Each dataset is committed independently so a late failure does not
// roll back earlier tables.
func (s *Service) IngestSeasons(ctx context.Context, seasons []int) error {
	for _, year := range seasons {
		start := time.Now()
		s.logger.Infof("Ingesting season %d", year)

		if err := s.ingestGames(ctx, year); err != nil {
			return fmt.Errorf("season %d games: %w", year, err)
		}
		if err := s.ingestRankings(ctx, year); err != nil {
			return fmt.Errorf("season %d rankings: %w", year, err)
		}
		if err := s.ingestDrives(ctx, year); err != nil {
			return fmt.Errorf("season %d drives: %w", year, err)
		}
		if err := s.ingestPlays(ctx, year); err != nil {
			return fmt.Errorf("season %d plays: %w", year, err)
		}
		if err := s.ingestLines(ctx, year); err != nil {
			return fmt.Errorf("season %d lines: %w", year, err)
		}

		s.logger.Infof("Season %d ingested in %s", year, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func (s *Service) ingestGames(ctx context.Context, year int) error {
	games, err := s.source.GetGames(ctx, year)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		s.logger.Warnf("No games returned for season %d", year)
		return nil
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(games, insertBatchSize).Error
	if err != nil {
		return err
	}

	s.logger.Infof("Upserted %d games for season %d", len(games), year)
	return nil
}

func (s *Service) ingestRankings(ctx context.Context, year int) error {
	rankings, err := s.source.GetRankings(ctx, year)
	if err != nil {
		return err
	}
	if len(rankings) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "season"}, {Name: "season_type"}, {Name: "week"},
			{Name: "poll"}, {Name: "team_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rank", "first_place_votes", "points", "school", "conference"}),
	}).CreateInBatches(rankings, insertBatchSize).Error
	if err != nil {
		return err
	}

	s.logger.Infof("Upserted %d ranking entries for season %d", len(rankings), year)
	return nil
}

func (s *Service) ingestDrives(ctx context.Context, year int) error {
	drives, err := s.source.GetDrives(ctx, year, s.maxWeeks)
	if err != nil {
		return err
	}
	if len(drives) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(drives, insertBatchSize).Error
	if err != nil {
		return err
	}

	s.logger.Infof("Upserted %d drives for season %d", len(drives), year)
	return nil
}

func (s *Service) ingestPlays(ctx context.Context, year int) error {
	plays, err := s.source.GetPlays(ctx, year, s.maxWeeks)
	if err != nil {
		return err
	}
	if len(plays) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).CreateInBatches(plays, insertBatchSize).Error
	if err != nil {
		return err
	}

	s.logger.Infof("Upserted %d plays for season %d", len(plays), year)
	return nil
}

func (s *Service) ingestLines(ctx context.Context, year int) error {
	lines, err := s.source.GetLines(ctx, year)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "provider"}},
		UpdateAll: true,
	}).CreateInBatches(lines, insertBatchSize).Error
	if err != nil {
		return err
	}

	s.logger.Infof("Upserted %d market lines for season %d", len(lines), year)
	return nil
}
