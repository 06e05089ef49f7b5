package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

func marketLine(homeID, awayID int64, week int, spread *float64) models.MarketLine {
	return models.MarketLine{
		Provider:   "DraftKings",
		HomeTeamID: homeID,
		HomeTeam:   "Ohio State",
		AwayTeamID: awayID,
		AwayTeam:   "Penn State",
		Week:       week,
		Spread:     spread,
	}
}

func TestRecommendDecisionRule(t *testing.T) {
	tests := []struct {
		name      string
		predicted float64
		market    float64
		expected  string
	}{
		{
			// Market has home favored by 3, model says by 10: home covers,
			// market spread keeps its original sign.
			name:      "home expected to cover",
			predicted: -10,
			market:    -3,
			expected:  "Ohio State covers -3.0",
		},
		{
			// Model likes the away side: show the spread from the away
			// team's perspective.
			name:      "away expected to cover",
			predicted: 2,
			market:    -3,
			expected:  "Penn State covers +3.0",
		},
		{
			name:      "inside the dead zone",
			predicted: -2,
			market:    -3,
			expected:  TooCloseToCall,
		},
		{
			name:      "exactly on the dead zone edge",
			predicted: -4,
			market:    -3,
			expected:  TooCloseToCall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds := []models.Prediction{
				{Season: 2024, Week: 9, HomeID: 1, AwayID: 2, PointSpreadPred: tt.predicted},
			}
			lines := []models.MarketLine{marketLine(1, 2, 9, floatPtr(tt.market))}

			recs := Recommend(preds, lines, "DraftKings", DefaultEdgeThreshold)
			require.Len(t, recs, 1)
			require.NotNil(t, recs[0].Recommendation)
			assert.Equal(t, tt.expected, *recs[0].Recommendation)
		})
	}
}

func TestRecommendMissingLineIsQuiet(t *testing.T) {
	preds := []models.Prediction{
		{Season: 2024, Week: 9, HomeID: 1, AwayID: 2, PointSpreadPred: -10},
	}

	// No line at all.
	recs := Recommend(preds, nil, "DraftKings", DefaultEdgeThreshold)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Recommendation)
	assert.Nil(t, recs[0].MarketSpread)

	// Line present but without a spread.
	recs = Recommend(preds, []models.MarketLine{marketLine(1, 2, 9, nil)}, "DraftKings", DefaultEdgeThreshold)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Recommendation)
	assert.Equal(t, "Ohio State", recs[0].HomeTeam)
}

func TestRecommendFiltersProvider(t *testing.T) {
	preds := []models.Prediction{
		{Season: 2024, Week: 9, HomeID: 1, AwayID: 2, PointSpreadPred: -10},
	}
	line := marketLine(1, 2, 9, floatPtr(-3))
	line.Provider = "Bovada"

	recs := Recommend(preds, []models.MarketLine{line}, "DraftKings", DefaultEdgeThreshold)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Recommendation)
}

func TestRecommendJoinsOnWeek(t *testing.T) {
	preds := []models.Prediction{
		{Season: 2024, Week: 9, HomeID: 1, AwayID: 2, PointSpreadPred: -10},
	}
	// Same matchup, wrong week: no join.
	recs := Recommend(preds, []models.MarketLine{marketLine(1, 2, 10, floatPtr(-3))}, "DraftKings", DefaultEdgeThreshold)
	require.Len(t, recs, 1)
	assert.Nil(t, recs[0].Recommendation)
}
