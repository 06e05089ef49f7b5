package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAssembleGameFeaturesHomeWin(t *testing.T) {
	tests := []struct {
		name     string
		game     models.Game
		expected int
	}{
		{
			name:     "completed home victory",
			game:     models.Game{ID: 1, Completed: true, HomePoints: intPtr(24), AwayPoints: intPtr(17)},
			expected: 1,
		},
		{
			name:     "completed home loss",
			game:     models.Game{ID: 2, Completed: true, HomePoints: intPtr(10), AwayPoints: intPtr(31)},
			expected: 0,
		},
		{
			name:     "incomplete game is never a home win",
			game:     models.Game{ID: 3, Completed: false, HomePoints: intPtr(24), AwayPoints: intPtr(17)},
			expected: 0,
		},
		{
			name:     "completed but points missing",
			game:     models.Game{ID: 4, Completed: true},
			expected: 0,
		},
		{
			name:     "tie",
			game:     models.Game{ID: 5, Completed: true, HomePoints: intPtr(20), AwayPoints: intPtr(20)},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := AssembleGameFeatures([]models.Game{tt.game}, nil, nil)
			require.Len(t, features, 1)
			assert.Equal(t, tt.expected, features[0].HomeWin)
		})
	}
}

func TestAssembleGameFeaturesDefaults(t *testing.T) {
	games := []models.Game{
		{ID: 1, Season: 2024, Week: 5, HomeID: 10, AwayID: 20},
	}

	features := AssembleGameFeatures(games, nil, nil)
	require.Len(t, features, 1)
	f := features[0]

	// Unranked teams both sit at 25, unknown Elo at 1500; diffs are zero.
	assert.Equal(t, 25.0, f.HomeRank)
	assert.Equal(t, 25.0, f.AwayRank)
	assert.Equal(t, 1500.0, f.HomeElo)
	assert.Equal(t, 1500.0, f.AwayElo)
	assert.Equal(t, 0.0, f.EloDiff)
	assert.Equal(t, 0.0, f.RankDiff)

	// No event data: performance rollups are zero, but the game row
	// survives.
	assert.Equal(t, 0, f.HomePerf.DrivesRun)
	assert.Equal(t, 0.0, f.AwayPerf.SuccessRate)
}

func TestAssembleGameFeaturesRankJoin(t *testing.T) {
	games := []models.Game{
		{
			ID: 1, Season: 2024, Week: 5, HomeID: 10, AwayID: 20,
			HomePregameElo: floatPtr(1720), AwayPregameElo: floatPtr(1580),
		},
	}
	rankings := []models.Ranking{
		{Season: 2024, Week: 5, Poll: "AP Top 25", TeamID: 10, Rank: 3},
		{Season: 2024, Week: 5, Poll: " ap top 25 ", TeamID: 20, Rank: 14},
		// Wrong poll and wrong week must not join.
		{Season: 2024, Week: 5, Poll: "Coaches Poll", TeamID: 10, Rank: 1},
		{Season: 2024, Week: 4, Poll: "AP Top 25", TeamID: 20, Rank: 2},
	}

	f := AssembleGameFeatures(games, nil, rankings)[0]
	assert.Equal(t, 3.0, f.HomeRank)
	assert.Equal(t, 14.0, f.AwayRank)
	assert.Equal(t, -11.0, f.RankDiff)
	assert.Equal(t, 140.0, f.EloDiff)
}

func TestAssembleGameFeaturesAttachesPerformance(t *testing.T) {
	games := []models.Game{{ID: 7, HomeID: 1, AwayID: 2}}
	perf := []TeamGamePerformance{
		{GameID: 7, Offense: "Home U", IsHomeOffense: 1, DriveScoringRate: 0.6},
		{GameID: 7, Offense: "Away U", IsHomeOffense: 0, DriveScoringRate: 0.2},
		{GameID: 8, Offense: "Other", IsHomeOffense: 1, DriveScoringRate: 0.9},
	}

	f := AssembleGameFeatures(games, perf, nil)[0]
	assert.Equal(t, 0.6, f.HomePerf.DriveScoringRate)
	assert.Equal(t, 0.2, f.AwayPerf.DriveScoringRate)
}

func TestAssembleGameFeaturesSpreadAndTotal(t *testing.T) {
	games := []models.Game{
		{ID: 1, Completed: true, HomePoints: intPtr(35), AwayPoints: intPtr(28)},
		{ID: 2},
	}

	features := AssembleGameFeatures(games, nil, nil)
	assert.Equal(t, 7.0, features[0].PointSpread)
	assert.Equal(t, 63.0, features[0].TotalPoints)

	// Missing points resolve to 0 before the arithmetic.
	assert.Equal(t, 0.0, features[1].PointSpread)
	assert.Equal(t, 0.0, features[1].TotalPoints)
}
