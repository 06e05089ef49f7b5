package pipeline

import (
	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

// PlaySummary is the play-level rollup for one (game, offense) group.
type PlaySummary struct {
	GameID  int64
	Offense string

	TotalPlays   int
	TotalYards   int
	ScoringPlays int
	TotalPPA     float64

	AvgYardsPerPlay float64
	AvgPPA          float64

	// SuccessRate is the fraction of ALL plays in the group whose PPA is
	// strictly positive. A play with no PPA value counts against the
	// denominator, not the numerator.
	SuccessRate float64
}

// AggregatePlays rolls the raw play table up per (game, offense). A
// missing PPA value contributes 0 to the sums and means. Empty groups
// produce all-zero summaries, never NaN.
func AggregatePlays(plays []models.Play) map[GroupKey]PlaySummary {
	type playAcc struct {
		PlaySummary
		successes int
	}

	acc := make(map[GroupKey]*playAcc)

	for _, p := range plays {
		key := GroupKey{GameID: p.GameID, Offense: p.Offense}
		s, ok := acc[key]
		if !ok {
			s = &playAcc{PlaySummary: PlaySummary{GameID: p.GameID, Offense: p.Offense}}
			acc[key] = s
		}

		s.TotalPlays++
		s.TotalYards += p.YardsGained
		if p.Scoring {
			s.ScoringPlays++
		}
		if p.PPA != nil {
			s.TotalPPA += *p.PPA
			if *p.PPA > 0 {
				s.successes++
			}
		}
	}

	out := make(map[GroupKey]PlaySummary, len(acc))
	for key, s := range acc {
		if s.TotalPlays > 0 {
			n := float64(s.TotalPlays)
			s.AvgYardsPerPlay = float64(s.TotalYards) / n
			s.AvgPPA = s.TotalPPA / n
			s.SuccessRate = float64(s.successes) / n
		}
		out[key] = s.PlaySummary
	}

	return out
}
