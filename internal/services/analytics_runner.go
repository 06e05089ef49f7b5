package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/ingest"
	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
	"github.com/LucasSeeley/Predictive-Analytics/internal/pipeline"
	"github.com/LucasSeeley/Predictive-Analytics/internal/store"
)

// AnalyticsRunner schedules the full refresh cycle: ingest raw data,
// run the prediction pipeline, persist the outputs, invalidate caches.
// A failed run leaves every store exactly as the previous run wrote it.
type AnalyticsRunner struct {
	loader          *store.Loader
	engine          *pipeline.Engine
	predictions     *store.PredictionStore
	recommendations *store.RecommendationStore
	evals           *store.EvalStore
	ingest          *ingest.Service
	cache           *CacheService
	seasons         []int
	interval        time.Duration
	logger          *logrus.Logger

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	lastError string
}

// NewAnalyticsRunner wires the refresh cycle. ingestSvc and cache may be
// nil; the runner then skips ingestion and cache invalidation.
func NewAnalyticsRunner(
	loader *store.Loader,
	engine *pipeline.Engine,
	predictions *store.PredictionStore,
	recommendations *store.RecommendationStore,
	evals *store.EvalStore,
	ingestSvc *ingest.Service,
	cache *CacheService,
	seasons []int,
	interval time.Duration,
	logger *logrus.Logger,
) *AnalyticsRunner {
	return &AnalyticsRunner{
		loader:          loader,
		engine:          engine,
		predictions:     predictions,
		recommendations: recommendations,
		evals:           evals,
		ingest:          ingestSvc,
		cache:           cache,
		seasons:         seasons,
		interval:        interval,
		logger:          logger,
		cron:            cron.New(),
	}
}

// Start begins the scheduled refresh cycle
func (r *AnalyticsRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("analytics runner is already running")
	}

	schedule := fmt.Sprintf("@every %s", r.interval.String())
	_, err := r.cron.AddFunc(schedule, r.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule analytics runner: %w", err)
	}

	r.cron.Start()
	r.isRunning = true

	r.logger.Info("Analytics runner started")
	return nil
}

// Stop halts the scheduled refresh cycle
func (r *AnalyticsRunner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	<-ctx.Done()

	r.isRunning = false
	r.logger.Info("Analytics runner stopped")
}

func (r *AnalyticsRunner) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if _, err := r.RunCycle(ctx); err != nil {
		r.logger.Errorf("Scheduled analytics run failed: %v", err)
	}
}

// RunCycle ingests fresh raw data (when a source is configured) and then
// runs the pipeline over the stored seasons.
func (r *AnalyticsRunner) RunCycle(ctx context.Context) (*pipeline.Result, error) {
	if r.ingest != nil {
		if err := r.ingest.IngestSeasons(ctx, r.seasons); err != nil {
			// Stale raw data is still usable; the pipeline runs on
			// whatever the last successful ingest stored.
			r.logger.Errorf("Ingestion failed, running pipeline on stored data: %v", err)
		}
	}
	return r.RunPipeline(ctx)
}

// RunPipeline loads the stored seasons, runs the prediction engine, and
// persists predictions, recommendations, and the evaluation. Nothing is
// written unless the engine run succeeds end to end.
func (r *AnalyticsRunner) RunPipeline(ctx context.Context) (*pipeline.Result, error) {
	start := time.Now()

	inputs, err := r.loader.LoadInputs(ctx, r.seasons)
	if err != nil {
		r.recordRun(err)
		return nil, fmt.Errorf("failed to load pipeline inputs: %w", err)
	}

	result, err := r.engine.Run(ctx, *inputs)
	if err != nil {
		r.recordRun(err)
		return nil, err
	}

	if err := r.predictions.UpsertBatch(ctx, result.Predictions); err != nil {
		r.recordRun(err)
		return nil, fmt.Errorf("failed to store predictions: %w", err)
	}
	if err := r.recommendations.ReplaceAll(ctx, result.Recommendations); err != nil {
		r.recordRun(err)
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}

	eval := &models.ModelEval{
		RunID:       result.RunID,
		Timestamp:   time.Now().UTC(),
		Accuracy:    result.Eval.Accuracy,
		AUC:         result.Eval.AUC,
		LogLoss:     result.Eval.LogLoss,
		RowsTrained: result.Eval.RowsTrained,
	}
	if err := r.evals.Save(ctx, eval); err != nil {
		r.logger.Errorf("Failed to store model evaluation: %v", err)
	}

	if r.cache != nil {
		if err := r.cache.InvalidatePipelineResults(ctx); err != nil {
			r.logger.Warnf("Cache invalidation failed: %v", err)
		}
	}

	r.recordRun(nil)
	r.logger.Infof("Analytics cycle complete in %s: %d predictions, %d recommendations",
		time.Since(start).Round(time.Millisecond), len(result.Predictions), len(result.Recommendations))

	return result, nil
}

func (r *AnalyticsRunner) recordRun(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastRun = time.Now().UTC()
	if err != nil {
		r.lastError = err.Error()
	} else {
		r.lastError = ""
	}
}

// Status returns the current state of the runner
func (r *AnalyticsRunner) Status() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	status := map[string]interface{}{
		"is_running": r.isRunning,
		"interval":   r.interval.String(),
		"seasons":    r.seasons,
		"next_runs":  nextRuns,
	}
	if !r.lastRun.IsZero() {
		status["last_run"] = r.lastRun
	}
	if r.lastError != "" {
		status["last_error"] = r.lastError
	}
	return status
}
