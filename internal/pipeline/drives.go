package pipeline

import (
	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

// GroupKey identifies one offense's share of one game. Every per-team-game
// rollup in the pipeline is keyed by it.
type GroupKey struct {
	GameID  int64
	Offense string
}

// DriveSummary is the drive-level rollup for one (game, offense) group.
type DriveSummary struct {
	GameID  int64
	Offense string

	DrivesRun       int
	DrivesScoring   int
	TotalDriveYards int
	TotalDrivePlays int
	IsHomeOffense   bool

	DriveScoringRate float64
	AvgDriveYards    float64
	AvgDrivePlays    float64
}

// AggregateDrives rolls the raw drive table up per (game, offense).
// A team is consistently home or away within a game, so IsHomeOffense
// collapses to a logical max over the group. Rates are 0 for empty
// groups; they never become NaN.
func AggregateDrives(drives []models.Drive) map[GroupKey]DriveSummary {
	acc := make(map[GroupKey]*DriveSummary)

	for _, d := range drives {
		key := GroupKey{GameID: d.GameID, Offense: d.Offense}
		s, ok := acc[key]
		if !ok {
			s = &DriveSummary{GameID: d.GameID, Offense: d.Offense}
			acc[key] = s
		}

		s.DrivesRun++
		if d.Scoring {
			s.DrivesScoring++
		}
		s.TotalDriveYards += d.Yards
		s.TotalDrivePlays += d.Plays
		if d.IsHomeOffense {
			s.IsHomeOffense = true
		}
	}

	out := make(map[GroupKey]DriveSummary, len(acc))
	for key, s := range acc {
		if s.DrivesRun > 0 {
			n := float64(s.DrivesRun)
			s.DriveScoringRate = float64(s.DrivesScoring) / n
			s.AvgDriveYards = float64(s.TotalDriveYards) / n
			s.AvgDrivePlays = float64(s.TotalDrivePlays) / n
		}
		out[key] = *s
	}

	return out
}
