package pipeline

import "sort"

// Weights of the composite offense efficiency score.
const (
	effWeightScoringRate  = 0.5
	effWeightYardsPerPlay = 0.3
	effWeightSuccessRate  = 0.2
)

// TeamGamePerformance is the merged drive and play rollup for one
// (game, offense). It is recomputed from scratch on every run and never
// persisted on its own.
type TeamGamePerformance struct {
	GameID        int64
	Offense       string
	IsHomeOffense int

	DrivesRun        int
	DrivesScoring    int
	TotalDriveYards  int
	TotalDrivePlays  int
	DriveScoringRate float64
	AvgDriveYards    float64
	AvgDrivePlays    float64

	TotalPlays      int
	TotalYards      int
	ScoringPlays    int
	TotalPPA        float64
	AvgYardsPerPlay float64
	AvgPPA          float64
	SuccessRate     float64

	OffenseEfficiency float64
}

// MergePerformance full-outer-joins the drive and play rollups on
// (game, offense); a group present on only one side fills the other
// side's fields with zeros. The efficiency score normalizes yards per
// play against the maximum across this batch, so it is comparable only
// within one run; an all-zero batch falls back to a normalizer of 1.0.
// Output order is deterministic regardless of map iteration.
func MergePerformance(drives map[GroupKey]DriveSummary, plays map[GroupKey]PlaySummary) []TeamGamePerformance {
	keys := make(map[GroupKey]struct{}, len(drives)+len(plays))
	for k := range drives {
		keys[k] = struct{}{}
	}
	for k := range plays {
		keys[k] = struct{}{}
	}

	merged := make([]TeamGamePerformance, 0, len(keys))
	for k := range keys {
		perf := TeamGamePerformance{GameID: k.GameID, Offense: k.Offense}

		if d, ok := drives[k]; ok {
			perf.DrivesRun = d.DrivesRun
			perf.DrivesScoring = d.DrivesScoring
			perf.TotalDriveYards = d.TotalDriveYards
			perf.TotalDrivePlays = d.TotalDrivePlays
			perf.DriveScoringRate = d.DriveScoringRate
			perf.AvgDriveYards = d.AvgDriveYards
			perf.AvgDrivePlays = d.AvgDrivePlays
			if d.IsHomeOffense {
				perf.IsHomeOffense = 1
			}
		}
		if p, ok := plays[k]; ok {
			perf.TotalPlays = p.TotalPlays
			perf.TotalYards = p.TotalYards
			perf.ScoringPlays = p.ScoringPlays
			perf.TotalPPA = p.TotalPPA
			perf.AvgYardsPerPlay = p.AvgYardsPerPlay
			perf.AvgPPA = p.AvgPPA
			perf.SuccessRate = p.SuccessRate
		}

		merged = append(merged, perf)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].GameID != merged[j].GameID {
			return merged[i].GameID < merged[j].GameID
		}
		return merged[i].Offense < merged[j].Offense
	})

	maxYds := 0.0
	for i := range merged {
		if merged[i].AvgYardsPerPlay > maxYds {
			maxYds = merged[i].AvgYardsPerPlay
		}
	}
	if maxYds <= 0 {
		maxYds = 1.0
	}

	for i := range merged {
		p := &merged[i]
		p.OffenseEfficiency = effWeightScoringRate*p.DriveScoringRate +
			effWeightYardsPerPlay*(p.AvgYardsPerPlay/maxYds) +
			effWeightSuccessRate*p.SuccessRate
	}

	return merged
}
