package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

// Inputs are the complete raw tables for the requested seasons, loaded
// up front. The transform chain is pure and touches no I/O after this
// point.
type Inputs struct {
	Games    []models.Game
	Rankings []models.Ranking
	Drives   []models.Drive
	Plays    []models.Play
	Lines    []models.MarketLine
}

// Result is everything one run produces. Predictions cover incomplete
// games only; Features and Matrix cover every game.
type Result struct {
	RunID           string
	Features        []GameFeatures
	Matrix          *FeatureMatrix
	Predictions     []models.Prediction
	Recommendations []models.BettingRecommendation
	Eval            Evaluation
}

// Engine runs the full feature-aggregation and betting-edge chain. Every
// step consumes a complete in-memory table and produces a new one; the
// engine owns no mutable state between runs.
type Engine struct {
	predictor Predictor
	provider  string
	threshold float64
	window    int
	logger    *logrus.Logger
}

// NewEngine creates an engine around the given model collaborator.
func NewEngine(predictor Predictor, provider string, threshold float64, window int, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{
		predictor: predictor,
		provider:  provider,
		threshold: threshold,
		window:    window,
		logger:    logger,
	}
}

// Run executes the whole chain: aggregate, assemble, window, predict,
// recommend. A model failure aborts the run before any output exists; the
// caller's stores stay untouched.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := e.logger.WithField("run_id", runID)
	log.WithFields(logrus.Fields{
		"games":  len(in.Games),
		"drives": len(in.Drives),
		"plays":  len(in.Plays),
		"lines":  len(in.Lines),
	}).Info("Starting analytics run")

	driveSummaries := AggregateDrives(in.Drives)
	playSummaries := AggregatePlays(in.Plays)
	performances := MergePerformance(driveSummaries, playSummaries)

	features := AssembleGameFeatures(in.Games, performances, in.Rankings)
	ApplyRollingForm(features, e.window)

	matrix := BuildMatrix(features, DefaultFeatureColumns(), e.logger)

	trainMatrix, trainLabels := trainingSlice(features, matrix)
	if len(trainMatrix.Rows) > 0 {
		if err := e.predictor.Fit(trainMatrix, trainLabels); err != nil {
			return nil, fmt.Errorf("model training failed: %w", err)
		}
	}

	output, err := e.predictor.Predict(matrix)
	if err != nil {
		// ModelUnavailable is fatal: no silent substitute predictions.
		return nil, fmt.Errorf("model prediction failed: %w", err)
	}
	if len(output.HomeWinProb) != len(features) {
		return nil, fmt.Errorf("model returned %d rows for %d games", len(output.HomeWinProb), len(features))
	}

	eval := e.evaluate(features, output)
	predictions := buildPredictions(features, output)
	recommendations := Recommend(predictions, in.Lines, e.provider, e.threshold)

	log.WithFields(logrus.Fields{
		"predictions":     len(predictions),
		"recommendations": len(recommendations),
		"rows_trained":    eval.RowsTrained,
	}).Info("Analytics run complete")

	return &Result{
		RunID:           runID,
		Features:        features,
		Matrix:          matrix,
		Predictions:     predictions,
		Recommendations: recommendations,
		Eval:            eval,
	}, nil
}

// trainingSlice restricts the matrix to completed games and pairs it with
// the known outcomes.
func trainingSlice(features []GameFeatures, matrix *FeatureMatrix) (*FeatureMatrix, TrainingLabels) {
	train := &FeatureMatrix{Columns: matrix.Columns}
	var labels TrainingLabels

	for i := range features {
		if !features[i].Completed {
			continue
		}
		train.Rows = append(train.Rows, matrix.Rows[i])
		labels.HomeWin = append(labels.HomeWin, float64(features[i].HomeWin))
		labels.PointSpread = append(labels.PointSpread, features[i].PointSpread)
		labels.TotalPoints = append(labels.TotalPoints, features[i].TotalPoints)
	}

	return train, labels
}

func (e *Engine) evaluate(features []GameFeatures, output *ModelOutput) Evaluation {
	var labels, preds, probs []float64
	for i := range features {
		if !features[i].Completed {
			continue
		}
		labels = append(labels, float64(features[i].HomeWin))
		preds = append(preds, output.HomeWinPred[i])
		probs = append(probs, output.HomeWinProb[i])
	}
	return Evaluate(labels, preds, probs)
}

// buildPredictions keeps incomplete games only, flips the spread estimate
// into the betting convention (negative = home favored), and dedupes by
// natural key keeping the last row after a stable (season, week) sort.
func buildPredictions(features []GameFeatures, output *ModelOutput) []models.Prediction {
	type predKey struct {
		Season int
		Week   int
		HomeID int64
		AwayID int64
	}

	rows := make([]models.Prediction, 0, len(features))
	for i := range features {
		if features[i].Completed {
			continue
		}
		rows = append(rows, models.Prediction{
			Season:          features[i].Season,
			Week:            features[i].Week,
			HomeID:          features[i].HomeID,
			AwayID:          features[i].AwayID,
			HomeWinPred:     output.HomeWinPred[i],
			HomeWinProb:     output.HomeWinProb[i],
			PointSpreadPred: -output.PointSpreadPred[i],
			TotalPointsPred: output.TotalPointsPred[i],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Season != rows[j].Season {
			return rows[i].Season < rows[j].Season
		}
		return rows[i].Week < rows[j].Week
	})

	seen := make(map[predKey]int)
	deduped := rows[:0]
	for _, row := range rows {
		key := predKey{Season: row.Season, Week: row.Week, HomeID: row.HomeID, AwayID: row.AwayID}
		if idx, ok := seen[key]; ok {
			deduped[idx] = row
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, row)
	}

	return deduped
}
