package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/api"
	"github.com/LucasSeeley/Predictive-Analytics/internal/api/handlers"
	"github.com/LucasSeeley/Predictive-Analytics/internal/api/middleware"
	"github.com/LucasSeeley/Predictive-Analytics/internal/ingest"
	"github.com/LucasSeeley/Predictive-Analytics/internal/pipeline"
	"github.com/LucasSeeley/Predictive-Analytics/internal/providers"
	"github.com/LucasSeeley/Predictive-Analytics/internal/services"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/config"
	"github.com/LucasSeeley/Predictive-Analytics/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)

	predictionStore := store.NewPredictionStore(db, logger)
	recommendationStore := store.NewRecommendationStore(db, logger)
	evalStore := store.NewEvalStore(db)
	loader := store.NewLoader(db)

	var ingestSvc *ingest.Service
	if cfg.CFBDAPIKey != "" {
		cfbd := providers.NewCFBDClient(cfg.CFBDAPIKey, cfg.CFBDRateLimit, cfg.ExternalAPITimeout, cfg.CircuitBreakerThreshold, logger)
		ingestSvc = ingest.NewService(db.DB, cfbd, cfg.MaxWeeks, logger)
	} else {
		logrus.Warn("CFBD_API_KEY not set, running on stored data only")
	}

	engine := pipeline.NewEngine(pipeline.NewBaselinePredictor(), cfg.BettingProvider, cfg.EdgeThreshold, cfg.RollingWindow, logger)

	interval, err := time.ParseDuration(cfg.PipelineInterval)
	if err != nil {
		logrus.Warnf("Invalid pipeline interval, using default 6h: %v", err)
		interval = 6 * time.Hour
	}

	runner := services.NewAnalyticsRunner(loader, engine, predictionStore, recommendationStore, evalStore, ingestSvc, cacheService, cfg.Seasons, interval, logger)
	if cfg.EnableBackgroundJobs {
		if err := runner.Start(); err != nil {
			logrus.Errorf("Failed to start analytics runner: %v", err)
		}
		defer runner.Stop()

		// Startup refresh. Scheduled cycles always ingest; the flag only
		// skips the one at boot.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			var err error
			if cfg.SkipInitialIngest {
				_, err = runner.RunPipeline(ctx)
			} else {
				_, err = runner.RunCycle(ctx)
			}
			if err != nil {
				logrus.Errorf("Startup analytics run failed: %v", err)
			}
		}()
	}

	runLimiter := services.NewClientRateLimiter(5, time.Hour)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(db, redisClient)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, api.Deps{
		Predictions:     predictionStore,
		Recommendations: recommendationStore,
		Evals:           evalStore,
		Cache:           cacheService,
		Runner:          runner,
		RunLimiter:      runLimiter,
		Logger:          logger,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
