package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// FeatureColumn is one named model input and the extractor that reads it
// from an enriched game row. A column whose extractor is nil has been
// disabled upstream and is filtered out when the matrix is built.
type FeatureColumn struct {
	Name    string
	Extract func(*GameFeatures) float64
}

// FeatureMatrix is the dense model input: one row per game, one value per
// active feature column, in a fixed order.
type FeatureMatrix struct {
	Columns []string
	Rows    [][]float64
}

// DefaultFeatureColumns is the versioned feature set handed to the model.
// Order matters: the trained model addresses inputs positionally.
func DefaultFeatureColumns() []FeatureColumn {
	return []FeatureColumn{
		{"elo_diff", func(f *GameFeatures) float64 { return f.EloDiff }},
		{"rank_diff", func(f *GameFeatures) float64 { return f.RankDiff }},
		{"home_id_recent_scored", func(f *GameFeatures) float64 { return f.HomeRecentScored }},
		{"home_id_recent_allowed", func(f *GameFeatures) float64 { return f.HomeRecentAllowed }},
		{"away_id_recent_scored", func(f *GameFeatures) float64 { return f.AwayRecentScored }},
		{"away_id_recent_allowed", func(f *GameFeatures) float64 { return f.AwayRecentAllowed }},
		{"home_drive_scoring_rate", func(f *GameFeatures) float64 { return f.HomePerf.DriveScoringRate }},
		{"away_drive_scoring_rate", func(f *GameFeatures) float64 { return f.AwayPerf.DriveScoringRate }},
		{"home_avg_yards_per_play", func(f *GameFeatures) float64 { return f.HomePerf.AvgYardsPerPlay }},
		{"away_avg_yards_per_play", func(f *GameFeatures) float64 { return f.AwayPerf.AvgYardsPerPlay }},
		{"home_offense_efficiency", func(f *GameFeatures) float64 { return f.HomePerf.OffenseEfficiency }},
		{"away_offense_efficiency", func(f *GameFeatures) float64 { return f.AwayPerf.OffenseEfficiency }},
		{"home_avg_ppa", func(f *GameFeatures) float64 { return f.HomePerf.AvgPPA }},
		{"away_avg_ppa", func(f *GameFeatures) float64 { return f.AwayPerf.AvgPPA }},
	}
}

// BuildMatrix selects the active feature columns from the enriched game
// rows. Columns without an extractor are dropped, never raised on, and
// the active set is logged for observability. Any non-finite value is
// zeroed right before handoff to the model.
func BuildMatrix(features []GameFeatures, columns []FeatureColumn, log *logrus.Logger) *FeatureMatrix {
	active := make([]FeatureColumn, 0, len(columns))
	for _, col := range columns {
		if col.Extract == nil {
			log.WithField("column", col.Name).Warn("Feature column unavailable, dropping from active set")
			continue
		}
		active = append(active, col)
	}

	names := make([]string, len(active))
	for i, col := range active {
		names[i] = col.Name
	}
	log.WithField("columns", names).Info("Using feature columns")

	rows := make([][]float64, len(features))
	for i := range features {
		row := make([]float64, len(active))
		for j, col := range active {
			v := col.Extract(&features[i])
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			row[j] = v
		}
		rows[i] = row
	}

	return &FeatureMatrix{Columns: names, Rows: rows}
}
