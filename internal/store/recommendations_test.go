package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

func recText(s string) *string { return &s }

func TestRecommendationStoreReplaceAll(t *testing.T) {
	db := newTestDB(t)
	s := NewRecommendationStore(db, quietLogger())
	ctx := context.Background()

	first := []models.BettingRecommendation{
		{Season: 2024, Week: 10, HomeID: 1, AwayID: 2, HomeTeam: "Texas", AwayTeam: "Baylor", PredictedSpread: -8, Recommendation: recText("Texas covers -4.5")},
		{Season: 2024, Week: 10, HomeID: 3, AwayID: 4, PredictedSpread: 1},
	}
	require.NoError(t, s.ReplaceAll(ctx, first))

	second := []models.BettingRecommendation{
		{Season: 2024, Week: 11, HomeID: 5, AwayID: 6, PredictedSpread: -2, Recommendation: recText("Too close to call")},
	}
	require.NoError(t, s.ReplaceAll(ctx, second))

	stored, err := s.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 11, stored[0].Week)
}

func TestRecommendationStoreReplaceWithEmptySet(t *testing.T) {
	db := newTestDB(t)
	s := NewRecommendationStore(db, quietLogger())
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []models.BettingRecommendation{
		{Season: 2024, Week: 10, HomeID: 1, AwayID: 2, PredictedSpread: -8},
	}))
	require.NoError(t, s.ReplaceAll(ctx, nil))

	stored, err := s.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEvalStoreSaveAndLatest(t *testing.T) {
	db := newTestDB(t)
	s := NewEvalStore(db)
	ctx := context.Background()

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	acc := 0.71
	require.NoError(t, s.Save(ctx, &models.ModelEval{RunID: "run-1", RowsTrained: 120, Accuracy: &acc}))
	require.NoError(t, s.Save(ctx, &models.ModelEval{RunID: "run-2", RowsTrained: 140}))

	latest, err = s.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-2", latest.RunID)
	assert.Nil(t, latest.Accuracy)
}
