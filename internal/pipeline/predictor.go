package pipeline

import (
	"fmt"
	"math"
)

// TrainingLabels are the per-row targets for completed games: home win
// (0/1), point spread (home minus away, positive = home won by that
// margin) and total points.
type TrainingLabels struct {
	HomeWin     []float64
	PointSpread []float64
	TotalPoints []float64
}

// ModelOutput carries the three model outputs for every matrix row, in
// row order. PointSpreadPred is in home-minus-away terms; the pipeline
// negates it into the betting convention before persisting.
type ModelOutput struct {
	HomeWinProb     []float64
	HomeWinPred     []float64
	PointSpreadPred []float64
	TotalPointsPred []float64
}

// Predictor is the external model collaborator: a classifier for the home
// win and two regressors for spread and total. A Predict error is fatal
// for the whole run; the engine never substitutes predictions.
type Predictor interface {
	Fit(train *FeatureMatrix, labels TrainingLabels) error
	Predict(m *FeatureMatrix) (*ModelOutput, error)
}

// BaselinePredictor is a stand-in for the externally trained gradient
// boosting models: logistic regression for the win probability and linear
// regression for the two point estimates, fitted by batch gradient
// descent on standardized features. Deterministic for a given training
// set.
type BaselinePredictor struct {
	Epochs       int
	LearningRate float64

	mean, std []float64

	clfWeights    []float64
	spreadWeights []float64
	totalWeights  []float64
	fitted        bool
}

// NewBaselinePredictor returns a predictor with the default training
// schedule.
func NewBaselinePredictor() *BaselinePredictor {
	return &BaselinePredictor{Epochs: 400, LearningRate: 0.05}
}

// Fit trains all three models on the completed-game rows.
func (p *BaselinePredictor) Fit(train *FeatureMatrix, labels TrainingLabels) error {
	n := len(train.Rows)
	if n == 0 {
		return fmt.Errorf("empty training matrix")
	}
	if len(labels.HomeWin) != n || len(labels.PointSpread) != n || len(labels.TotalPoints) != n {
		return fmt.Errorf("label length mismatch: %d rows, %d/%d/%d labels",
			n, len(labels.HomeWin), len(labels.PointSpread), len(labels.TotalPoints))
	}

	p.standardizeFrom(train)
	scaled := p.scale(train.Rows)

	p.clfWeights = p.descend(scaled, labels.HomeWin, true)
	p.spreadWeights = p.descend(scaled, labels.PointSpread, false)
	p.totalWeights = p.descend(scaled, labels.TotalPoints, false)
	p.fitted = true
	return nil
}

// Predict scores every row of the matrix. The decision label uses the
// usual 0.5 probability cut.
func (p *BaselinePredictor) Predict(m *FeatureMatrix) (*ModelOutput, error) {
	if !p.fitted {
		return nil, fmt.Errorf("predictor is not fitted")
	}
	if len(m.Columns) != len(p.mean) {
		return nil, fmt.Errorf("feature count mismatch: fitted on %d, got %d", len(p.mean), len(m.Columns))
	}

	scaled := p.scale(m.Rows)
	out := &ModelOutput{
		HomeWinProb:     make([]float64, len(scaled)),
		HomeWinPred:     make([]float64, len(scaled)),
		PointSpreadPred: make([]float64, len(scaled)),
		TotalPointsPred: make([]float64, len(scaled)),
	}

	for i, row := range scaled {
		prob := sigmoid(dot(p.clfWeights, row))
		out.HomeWinProb[i] = prob
		if prob >= 0.5 {
			out.HomeWinPred[i] = 1
		}
		out.PointSpreadPred[i] = dot(p.spreadWeights, row)
		out.TotalPointsPred[i] = dot(p.totalWeights, row)
	}

	return out, nil
}

func (p *BaselinePredictor) standardizeFrom(m *FeatureMatrix) {
	cols := len(m.Columns)
	p.mean = make([]float64, cols)
	p.std = make([]float64, cols)

	n := float64(len(m.Rows))
	for _, row := range m.Rows {
		for j, v := range row {
			p.mean[j] += v
		}
	}
	for j := range p.mean {
		p.mean[j] /= n
	}
	for _, row := range m.Rows {
		for j, v := range row {
			d := v - p.mean[j]
			p.std[j] += d * d
		}
	}
	for j := range p.std {
		p.std[j] = math.Sqrt(p.std[j] / n)
		if p.std[j] == 0 {
			p.std[j] = 1
		}
	}
}

// scale standardizes rows and prepends the bias term.
func (p *BaselinePredictor) scale(rows [][]float64) [][]float64 {
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		s := make([]float64, len(row)+1)
		s[0] = 1
		for j, v := range row {
			s[j+1] = (v - p.mean[j]) / p.std[j]
		}
		scaled[i] = s
	}
	return scaled
}

// descend runs batch gradient descent. Both the logistic and the squared
// loss share the same gradient form once the prediction function is
// swapped.
func (p *BaselinePredictor) descend(rows [][]float64, targets []float64, logistic bool) []float64 {
	weights := make([]float64, len(rows[0]))
	n := float64(len(rows))

	for epoch := 0; epoch < p.Epochs; epoch++ {
		grad := make([]float64, len(weights))
		for i, row := range rows {
			pred := dot(weights, row)
			if logistic {
				pred = sigmoid(pred)
			}
			err := pred - targets[i]
			for j, v := range row {
				grad[j] += err * v
			}
		}
		for j := range weights {
			weights[j] -= p.LearningRate * grad[j] / n
		}
	}

	return weights
}

func dot(w, x []float64) float64 {
	sum := 0.0
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
