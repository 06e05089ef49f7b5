package pipeline

import (
	"fmt"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

// DefaultEdgeThreshold is the dead zone around the market spread. A
// predicted spread within one point of the market is noise, not an edge;
// the threshold is a tunable constant, not a derived value.
const DefaultEdgeThreshold = 1.0

// TooCloseToCall is the recommendation text when the model and the market
// agree within the dead zone.
const TooCloseToCall = "Too close to call"

type lineKey struct {
	HomeID int64
	AwayID int64
	Week   int
}

// Recommend joins each prediction to the configured provider's market
// line on (home id, away id, week) and applies the edge rule. Both
// spreads follow the betting convention (negative = home favored):
//
//   - no market line, or a line with no spread → no recommendation;
//   - predicted < market − threshold → home covers, market spread shown
//     with its original sign;
//   - predicted > market + threshold → away covers, market spread shown
//     sign-flipped into the away team's perspective;
//   - otherwise → too close to call.
//
// Every prediction yields an output row; a missing join is a quiet
// degrade, never an error.
func Recommend(predictions []models.Prediction, lines []models.MarketLine, provider string, threshold float64) []models.BettingRecommendation {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}

	byGame := make(map[lineKey]models.MarketLine)
	for _, l := range lines {
		if l.Provider != provider {
			continue
		}
		byGame[lineKey{HomeID: l.HomeTeamID, AwayID: l.AwayTeamID, Week: l.Week}] = l
	}

	out := make([]models.BettingRecommendation, 0, len(predictions))
	for _, pred := range predictions {
		rec := models.BettingRecommendation{
			Season:          pred.Season,
			Week:            pred.Week,
			HomeID:          pred.HomeID,
			AwayID:          pred.AwayID,
			PredictedSpread: pred.PointSpreadPred,
		}

		line, ok := byGame[lineKey{HomeID: pred.HomeID, AwayID: pred.AwayID, Week: pred.Week}]
		if ok {
			rec.HomeTeam = line.HomeTeam
			rec.AwayTeam = line.AwayTeam
			rec.MarketSpread = line.Spread
		}

		if ok && line.Spread != nil {
			text := coverText(pred.PointSpreadPred, *line.Spread, line.HomeTeam, line.AwayTeam, threshold)
			rec.Recommendation = &text
		}

		out = append(out, rec)
	}

	return out
}

func coverText(predicted, market float64, homeTeam, awayTeam string, threshold float64) string {
	switch {
	case predicted < market-threshold:
		// Model likes the home side more than the market does.
		return fmt.Sprintf("%s covers %+.1f", homeTeam, market)
	case predicted > market+threshold:
		return fmt.Sprintf("%s covers %+.1f", awayTeam, -market)
	default:
		return TooCloseToCall
	}
}
