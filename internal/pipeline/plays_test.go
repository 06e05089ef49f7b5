package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

func ppa(v float64) *float64 { return &v }

func TestAggregatePlaysSuccessRate(t *testing.T) {
	// 2 of 4 plays have strictly positive PPA: success rate is exactly 0.5.
	plays := []models.Play{
		{ID: 1, GameID: 100, Offense: "Michigan", PPA: ppa(0.2), YardsGained: 12},
		{ID: 2, GameID: 100, Offense: "Michigan", PPA: ppa(-0.1), YardsGained: 2},
		{ID: 3, GameID: 100, Offense: "Michigan", PPA: ppa(0), YardsGained: 0},
		{ID: 4, GameID: 100, Offense: "Michigan", PPA: ppa(0.05), YardsGained: 6, Scoring: true},
	}

	summaries := AggregatePlays(plays)
	require.Len(t, summaries, 1)

	s := summaries[GroupKey{GameID: 100, Offense: "Michigan"}]
	assert.Equal(t, 4, s.TotalPlays)
	assert.Equal(t, 0.5, s.SuccessRate)
	assert.Equal(t, 20, s.TotalYards)
	assert.Equal(t, 5.0, s.AvgYardsPerPlay)
	assert.Equal(t, 1, s.ScoringPlays)
	assert.InDelta(t, 0.15, s.TotalPPA, 1e-9)
	assert.InDelta(t, 0.0375, s.AvgPPA, 1e-9)
}

func TestAggregatePlaysMissingPPA(t *testing.T) {
	// Plays with no PPA value count against the success-rate denominator
	// and contribute 0 to the sums.
	plays := []models.Play{
		{ID: 1, GameID: 100, Offense: "Navy", PPA: ppa(0.4)},
		{ID: 2, GameID: 100, Offense: "Navy", PPA: nil},
		{ID: 3, GameID: 100, Offense: "Navy", PPA: nil},
		{ID: 4, GameID: 100, Offense: "Navy", PPA: nil},
	}

	s := AggregatePlays(plays)[GroupKey{GameID: 100, Offense: "Navy"}]
	assert.Equal(t, 0.25, s.SuccessRate)
	assert.InDelta(t, 0.4, s.TotalPPA, 1e-9)
	assert.InDelta(t, 0.1, s.AvgPPA, 1e-9)
}

func TestAggregatePlaysEmptyInput(t *testing.T) {
	assert.Empty(t, AggregatePlays(nil))
}
