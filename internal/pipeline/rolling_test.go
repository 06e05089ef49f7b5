package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyRollingFormFirstAppearanceIsZero(t *testing.T) {
	features := []GameFeatures{
		{GameID: 1, HomeID: 10, AwayID: 20, HomePoints: 28, AwayPoints: 14},
	}

	ApplyRollingForm(features, 3)

	assert.Equal(t, 0.0, features[0].HomeRecentScored)
	assert.Equal(t, 0.0, features[0].HomeRecentAllowed)
	assert.Equal(t, 0.0, features[0].AwayRecentScored)
	assert.Equal(t, 0.0, features[0].AwayRecentAllowed)
}

func TestApplyRollingFormSecondAppearanceIsFirstGameValue(t *testing.T) {
	features := []GameFeatures{
		{GameID: 1, HomeID: 10, AwayID: 20, HomePoints: 28, AwayPoints: 14},
		{GameID: 2, HomeID: 10, AwayID: 30, HomePoints: 70, AwayPoints: 7},
	}

	ApplyRollingForm(features, 3)

	// The second home game sees exactly the first game's outcome, never
	// its own: 70-7 must not leak into row 2's form.
	assert.Equal(t, 28.0, features[1].HomeRecentScored)
	assert.Equal(t, 14.0, features[1].HomeRecentAllowed)
}

func TestApplyRollingFormWindowMean(t *testing.T) {
	features := []GameFeatures{
		{GameID: 1, HomeID: 10, AwayID: 20, HomePoints: 10, AwayPoints: 3},
		{GameID: 2, HomeID: 10, AwayID: 21, HomePoints: 20, AwayPoints: 6},
		{GameID: 3, HomeID: 10, AwayID: 22, HomePoints: 30, AwayPoints: 9},
		{GameID: 4, HomeID: 10, AwayID: 23, HomePoints: 40, AwayPoints: 12},
		{GameID: 5, HomeID: 10, AwayID: 24, HomePoints: 50, AwayPoints: 15},
	}

	ApplyRollingForm(features, 3)

	assert.Equal(t, 0.0, features[0].HomeRecentScored)
	assert.Equal(t, 10.0, features[1].HomeRecentScored)
	assert.Equal(t, 15.0, features[2].HomeRecentScored)
	assert.Equal(t, 20.0, features[3].HomeRecentScored)
	// Window caps at 3: mean of games 2..4, game 1 has rolled out.
	assert.Equal(t, 30.0, features[4].HomeRecentScored)
	assert.Equal(t, 9.0, features[4].HomeRecentAllowed)
}

func TestApplyRollingFormPerspectivesAreIndependent(t *testing.T) {
	// Team 10 hosts game 1 and visits game 2. Home and away groupings are
	// separate: the away-perspective window only sees away appearances.
	features := []GameFeatures{
		{GameID: 1, HomeID: 10, AwayID: 20, HomePoints: 35, AwayPoints: 0},
		{GameID: 2, HomeID: 20, AwayID: 10, HomePoints: 3, AwayPoints: 17},
		{GameID: 3, HomeID: 20, AwayID: 10, HomePoints: 21, AwayPoints: 24},
	}

	ApplyRollingForm(features, 3)

	// Game 2 is team 10's first away appearance.
	assert.Equal(t, 0.0, features[1].AwayRecentScored)
	// Game 3 sees team 10's one prior away game: scored 17, allowed 3.
	assert.Equal(t, 17.0, features[2].AwayRecentScored)
	assert.Equal(t, 3.0, features[2].AwayRecentAllowed)
	// Team 20's home window at game 3 sees only game 2.
	assert.Equal(t, 3.0, features[2].HomeRecentScored)
	assert.Equal(t, 17.0, features[2].HomeRecentAllowed)
}

func TestApplyRollingFormNonPositiveWindowUsesDefault(t *testing.T) {
	features := []GameFeatures{
		{GameID: 1, HomeID: 1, AwayID: 2, HomePoints: 14, AwayPoints: 7},
		{GameID: 2, HomeID: 1, AwayID: 2, HomePoints: 21, AwayPoints: 10},
	}

	ApplyRollingForm(features, 0)
	assert.Equal(t, 14.0, features[1].HomeRecentScored)
}
