package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func separableMatrix() (*FeatureMatrix, TrainingLabels) {
	// One feature that cleanly separates winners from losers.
	m := &FeatureMatrix{
		Columns: []string{"elo_diff"},
		Rows: [][]float64{
			{200}, {150}, {120}, {90},
			{-200}, {-150}, {-120}, {-90},
		},
	}
	labels := TrainingLabels{
		HomeWin:     []float64{1, 1, 1, 1, 0, 0, 0, 0},
		PointSpread: []float64{21, 14, 10, 7, -21, -14, -10, -7},
		TotalPoints: []float64{55, 52, 48, 45, 55, 52, 48, 45},
	}
	return m, labels
}

func TestBaselinePredictorLearnsDirection(t *testing.T) {
	m, labels := separableMatrix()
	p := NewBaselinePredictor()
	require.NoError(t, p.Fit(m, labels))

	out, err := p.Predict(m)
	require.NoError(t, err)
	require.Len(t, out.HomeWinProb, len(m.Rows))

	for i, prob := range out.HomeWinProb {
		assert.GreaterOrEqual(t, prob, 0.0)
		assert.LessOrEqual(t, prob, 1.0)
		if labels.HomeWin[i] == 1 {
			assert.Greater(t, prob, 0.5, "row %d should favor home", i)
			assert.Equal(t, 1.0, out.HomeWinPred[i])
			assert.Greater(t, out.PointSpreadPred[i], 0.0)
		} else {
			assert.Less(t, prob, 0.5, "row %d should favor away", i)
			assert.Equal(t, 0.0, out.HomeWinPred[i])
			assert.Less(t, out.PointSpreadPred[i], 0.0)
		}
	}
}

func TestBaselinePredictorIsDeterministic(t *testing.T) {
	m, labels := separableMatrix()

	p1 := NewBaselinePredictor()
	require.NoError(t, p1.Fit(m, labels))
	out1, err := p1.Predict(m)
	require.NoError(t, err)

	p2 := NewBaselinePredictor()
	require.NoError(t, p2.Fit(m, labels))
	out2, err := p2.Predict(m)
	require.NoError(t, err)

	assert.Equal(t, out1.HomeWinProb, out2.HomeWinProb)
	assert.Equal(t, out1.PointSpreadPred, out2.PointSpreadPred)
}

func TestBaselinePredictorErrors(t *testing.T) {
	p := NewBaselinePredictor()

	_, err := p.Predict(&FeatureMatrix{Columns: []string{"a"}})
	assert.Error(t, err, "predict before fit")

	err = p.Fit(&FeatureMatrix{Columns: []string{"a"}}, TrainingLabels{})
	assert.Error(t, err, "empty training matrix")

	m, labels := separableMatrix()
	require.NoError(t, p.Fit(m, labels))
	_, err = p.Predict(&FeatureMatrix{Columns: []string{"a", "b"}, Rows: [][]float64{{1, 2}}})
	assert.Error(t, err, "feature count mismatch")
}

func TestEvaluateMetrics(t *testing.T) {
	labels := []float64{1, 1, 0, 0}
	preds := []float64{1, 0, 0, 0}
	probs := []float64{0.9, 0.4, 0.2, 0.1}

	eval := Evaluate(labels, preds, probs)
	require.NotNil(t, eval.Accuracy)
	require.NotNil(t, eval.AUC)
	require.NotNil(t, eval.LogLoss)

	assert.Equal(t, 4, eval.RowsTrained)
	assert.InDelta(t, 0.75, *eval.Accuracy, 1e-9)
	// Perfect ranking despite one wrong hard label.
	assert.InDelta(t, 1.0, *eval.AUC, 1e-9)
	assert.Greater(t, *eval.LogLoss, 0.0)
}

func TestEvaluateSingleClass(t *testing.T) {
	eval := Evaluate([]float64{1, 1, 1}, []float64{1, 1, 1}, []float64{0.9, 0.8, 0.7})
	assert.Nil(t, eval.Accuracy)
	assert.Nil(t, eval.AUC)
	assert.Nil(t, eval.LogLoss)
	assert.Equal(t, 3, eval.RowsTrained)
}
