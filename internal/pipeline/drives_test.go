package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

func TestAggregateDrives(t *testing.T) {
	drives := []models.Drive{
		{ID: 1, GameID: 100, Offense: "Georgia", IsHomeOffense: true, DriveNumber: 1, Scoring: true, Plays: 8, Yards: 75},
		{ID: 2, GameID: 100, Offense: "Georgia", IsHomeOffense: true, DriveNumber: 3, Scoring: false, Plays: 3, Yards: 5},
		{ID: 3, GameID: 100, Offense: "Alabama", IsHomeOffense: false, DriveNumber: 2, Scoring: true, Plays: 10, Yards: 60},
		{ID: 4, GameID: 200, Offense: "Georgia", IsHomeOffense: false, DriveNumber: 1, Scoring: false, Plays: 4, Yards: 12},
	}

	summaries := AggregateDrives(drives)
	require.Len(t, summaries, 3)

	uga := summaries[GroupKey{GameID: 100, Offense: "Georgia"}]
	assert.Equal(t, 2, uga.DrivesRun)
	assert.Equal(t, 1, uga.DrivesScoring)
	assert.Equal(t, 80, uga.TotalDriveYards)
	assert.Equal(t, 11, uga.TotalDrivePlays)
	assert.True(t, uga.IsHomeOffense)
	assert.Equal(t, 0.5, uga.DriveScoringRate)
	assert.Equal(t, 40.0, uga.AvgDriveYards)
	assert.Equal(t, 5.5, uga.AvgDrivePlays)

	bama := summaries[GroupKey{GameID: 100, Offense: "Alabama"}]
	assert.False(t, bama.IsHomeOffense)
	assert.Equal(t, 1.0, bama.DriveScoringRate)

	// Same offense in a different game is a separate group.
	ugaAway := summaries[GroupKey{GameID: 200, Offense: "Georgia"}]
	assert.Equal(t, 1, ugaAway.DrivesRun)
	assert.False(t, ugaAway.IsHomeOffense)
}

func TestAggregateDrivesEmptyInput(t *testing.T) {
	summaries := AggregateDrives(nil)
	assert.Empty(t, summaries)
}

func TestAggregateDrivesZeroValuedFields(t *testing.T) {
	// Absent optional data arrives as zero-valued fields and must degrade
	// to zero rates, never NaN.
	drives := []models.Drive{
		{ID: 1, GameID: 100, Offense: "Rice"},
		{ID: 2, GameID: 100, Offense: "Rice"},
	}

	summaries := AggregateDrives(drives)
	s := summaries[GroupKey{GameID: 100, Offense: "Rice"}]

	assert.Equal(t, 2, s.DrivesRun)
	assert.Equal(t, 0.0, s.DriveScoringRate)
	assert.Equal(t, 0.0, s.AvgDriveYards)
	assert.Equal(t, 0.0, s.AvgDrivePlays)
	assert.False(t, math.IsNaN(s.DriveScoringRate))
}
