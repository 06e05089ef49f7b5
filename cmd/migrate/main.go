package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/config"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := store.Migrate(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := store.Migrate(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func dropTables(db *database.DB) error {
	// Derived tables first, raw tables last
	tables := []string{
		"ai_best_bets",
		"cfb_predictions",
		"model_evals",
		"cfb_lines",
		"cfb_plays",
		"cfb_drives",
		"cfb_rankings",
		"cfb_games",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

// seedData loads one small fictional week of games so local development
// works without a CollegeFootballData API key.
func seedData(db *database.DB) error {
	season := time.Now().Year()
	kickoff := time.Now().Add(48 * time.Hour).UTC()

	pts := func(v int) *int { return &v }
	fl := func(v float64) *float64 { return &v }

	games := []models.Game{
		{
			ID: 900001, Season: season, Week: 1, SeasonType: "regular", Completed: true,
			HomeID: 101, HomeTeam: "Ohio State", HomePoints: pts(31), HomePregameElo: fl(1820),
			AwayID: 102, AwayTeam: "Penn State", AwayPoints: pts(17), AwayPregameElo: fl(1710),
			Venue: "Ohio Stadium",
		},
		{
			ID: 900002, Season: season, Week: 1, SeasonType: "regular", Completed: true,
			HomeID: 103, HomeTeam: "Oregon", HomePoints: pts(24), HomePregameElo: fl(1770),
			AwayID: 104, AwayTeam: "Washington", AwayPoints: pts(27), AwayPregameElo: fl(1745),
			Venue: "Autzen Stadium",
		},
		{
			ID: 900003, Season: season, Week: 2, SeasonType: "regular", Completed: false,
			StartDate: &kickoff,
			HomeID:    101, HomeTeam: "Ohio State", HomePregameElo: fl(1835),
			AwayID: 103, AwayTeam: "Oregon", AwayPregameElo: fl(1760),
			Venue: "Ohio Stadium",
		},
	}
	if err := db.Create(&games).Error; err != nil {
		return fmt.Errorf("failed to seed games: %w", err)
	}

	rankings := []models.Ranking{
		{Season: season, SeasonType: "regular", Week: 2, Poll: "AP Top 25", Rank: 1, TeamID: 101, School: "Ohio State"},
		{Season: season, SeasonType: "regular", Week: 2, Poll: "AP Top 25", Rank: 4, TeamID: 103, School: "Oregon"},
		{Season: season, SeasonType: "regular", Week: 2, Poll: "AP Top 25", Rank: 7, TeamID: 104, School: "Washington"},
	}
	if err := db.Create(&rankings).Error; err != nil {
		return fmt.Errorf("failed to seed rankings: %w", err)
	}

	drives := []models.Drive{
		{ID: 910001, GameID: 900001, Offense: "Ohio State", Defense: "Penn State", IsHomeOffense: true, DriveNumber: 1, Scoring: true, DriveResult: "TD", Plays: 9, Yards: 75, Season: season, Week: 1},
		{ID: 910002, GameID: 900001, Offense: "Penn State", Defense: "Ohio State", DriveNumber: 2, Scoring: false, DriveResult: "PUNT", Plays: 3, Yards: 7, Season: season, Week: 1},
		{ID: 910003, GameID: 900002, Offense: "Oregon", Defense: "Washington", IsHomeOffense: true, DriveNumber: 1, Scoring: true, DriveResult: "FG", Plays: 11, Yards: 48, Season: season, Week: 1},
		{ID: 910004, GameID: 900002, Offense: "Washington", Defense: "Oregon", DriveNumber: 2, Scoring: true, DriveResult: "TD", Plays: 6, Yards: 70, Season: season, Week: 1},
	}
	if err := db.Create(&drives).Error; err != nil {
		return fmt.Errorf("failed to seed drives: %w", err)
	}

	plays := []models.Play{
		{ID: 920001, DriveID: 910001, GameID: 900001, Offense: "Ohio State", Defense: "Penn State", Down: 1, Distance: 10, YardsGained: 12, PlayType: "Rush", PPA: fl(0.42), Season: season, Week: 1},
		{ID: 920002, DriveID: 910001, GameID: 900001, Offense: "Ohio State", Defense: "Penn State", Down: 1, Distance: 10, YardsGained: 28, Scoring: true, PlayType: "Pass Reception", PPA: fl(2.1), Season: season, Week: 1},
		{ID: 920003, DriveID: 910002, GameID: 900001, Offense: "Penn State", Defense: "Ohio State", Down: 3, Distance: 8, YardsGained: 2, PlayType: "Rush", PPA: fl(-0.6), Season: season, Week: 1},
		{ID: 920004, DriveID: 910003, GameID: 900002, Offense: "Oregon", Defense: "Washington", Down: 2, Distance: 6, YardsGained: 9, PlayType: "Pass Reception", PPA: fl(0.3), Season: season, Week: 1},
		{ID: 920005, DriveID: 910004, GameID: 900002, Offense: "Washington", Defense: "Oregon", Down: 1, Distance: 10, YardsGained: 70, Scoring: true, PlayType: "Pass Reception", PPA: fl(3.4), Season: season, Week: 1},
	}
	if err := db.Create(&plays).Error; err != nil {
		return fmt.Errorf("failed to seed plays: %w", err)
	}

	lines := []models.MarketLine{
		{GameID: 900003, Provider: "DraftKings", Season: season, SeasonType: "regular", Week: 2, HomeTeamID: 101, HomeTeam: "Ohio State", AwayTeamID: 103, AwayTeam: "Oregon", Spread: fl(-6.5), OverUnder: fl(54.5)},
		{GameID: 900003, Provider: "Bovada", Season: season, SeasonType: "regular", Week: 2, HomeTeamID: 101, HomeTeam: "Ohio State", AwayTeamID: 103, AwayTeam: "Oregon", Spread: fl(-7.0), OverUnder: fl(55.0)},
	}
	if err := db.Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to seed lines: %w", err)
	}

	logrus.Infof("Seeded %d games, %d drives, %d plays, %d lines for season %d",
		len(games), len(drives), len(plays), len(lines), season)
	return nil
}
