package pipeline

import (
	"math"
	"sort"
)

// Evaluation holds one run's headline metrics over completed games.
// Metrics are nil when the training set contains a single class, where
// accuracy, AUC and log loss are undefined.
type Evaluation struct {
	Accuracy    *float64
	AUC         *float64
	LogLoss     *float64
	RowsTrained int
}

// Evaluate scores the classifier against the known outcomes of completed
// games.
func Evaluate(labels, predictions, probabilities []float64) Evaluation {
	eval := Evaluation{RowsTrained: len(labels)}

	classes := make(map[float64]struct{})
	for _, y := range labels {
		classes[y] = struct{}{}
	}
	if len(classes) < 2 {
		return eval
	}

	acc := accuracy(labels, predictions)
	auc := rocAUC(labels, probabilities)
	loss := logLoss(labels, probabilities)
	eval.Accuracy = &acc
	eval.AUC = &auc
	eval.LogLoss = &loss
	return eval
}

func accuracy(labels, predictions []float64) float64 {
	correct := 0
	for i := range labels {
		if labels[i] == predictions[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}

// rocAUC computes the area under the ROC curve via the rank-sum identity:
// the probability a random positive scores above a random negative, with
// ties counting half.
func rocAUC(labels, probabilities []float64) float64 {
	idx := make([]int, len(probabilities))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probabilities[idx[a]] < probabilities[idx[b]]
	})

	// Average ranks across tied scores.
	ranks := make([]float64, len(idx))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && probabilities[idx[j]] == probabilities[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}

	positives := 0
	rankSum := 0.0
	for i, y := range labels {
		if y == 1 {
			positives++
			rankSum += ranks[i]
		}
	}
	negatives := len(labels) - positives

	return (rankSum - float64(positives)*float64(positives+1)/2.0) /
		(float64(positives) * float64(negatives))
}

func logLoss(labels, probabilities []float64) float64 {
	const eps = 1e-15
	sum := 0.0
	for i, y := range labels {
		p := math.Min(math.Max(probabilities[i], eps), 1-eps)
		if y == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(labels))
}
