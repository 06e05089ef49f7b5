package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/ingest"
	"github.com/LucasSeeley/Predictive-Analytics/internal/pipeline"
	"github.com/LucasSeeley/Predictive-Analytics/internal/providers"
	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/config"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

// One-shot batch run: ingest (unless skipped), run the pipeline, persist,
// exit. Suitable for cron jobs outside the long-running server.
func main() {
	skipIngest := flag.Bool("skip-ingest", false, "run the pipeline on stored data without fetching")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logger := logrus.StandardLogger()

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	var ingestSvc *ingest.Service
	if !*skipIngest {
		if cfg.CFBDAPIKey == "" {
			logrus.Warn("CFBD_API_KEY not set, skipping ingestion")
		} else {
			cfbd := providers.NewCFBDClient(cfg.CFBDAPIKey, cfg.CFBDRateLimit, cfg.ExternalAPITimeout, cfg.CircuitBreakerThreshold, logger)
			ingestSvc = ingest.NewService(db.DB, cfbd, cfg.MaxWeeks, logger)
		}
	}

	engine := pipeline.NewEngine(pipeline.NewBaselinePredictor(), cfg.BettingProvider, cfg.EdgeThreshold, cfg.RollingWindow, logger)
	runner := services.NewAnalyticsRunner(
		store.NewLoader(db),
		engine,
		store.NewPredictionStore(db, logger),
		store.NewRecommendationStore(db, logger),
		store.NewEvalStore(db),
		ingestSvc,
		nil,
		cfg.Seasons,
		0,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := runner.RunCycle(ctx)
	if err != nil {
		logrus.Fatalf("Pipeline run failed: %v", err)
	}

	logrus.Infof("Run %s complete: %d predictions, %d recommendations", result.RunID, len(result.Predictions), len(result.Recommendations))
}
