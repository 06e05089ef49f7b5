package pipeline

import (
	"strings"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

// Documented defaults for unresolvable joins: an unranked team sits at the
// bottom of the AP Top 25, a team with no Elo history sits at the league
// baseline.
const (
	DefaultRank = 25.0
	DefaultElo  = 1500.0
)

const apPollName = "ap top 25"

// GameFeatures is one enriched game row: the raw game plus resolved
// defaults, derived targets, both offenses' performance rollups, and the
// rolling-form columns filled in by ApplyRollingForm.
type GameFeatures struct {
	GameID    int64
	Season    int
	Week      int
	Completed bool

	HomeID   int64
	HomeTeam string
	AwayID   int64
	AwayTeam string

	// Final points with nil resolved to 0. HomeWin is 1 only for a
	// completed game with both totals present and home ahead; everything
	// else (including future games) is 0 by definition.
	HomePoints  float64
	AwayPoints  float64
	HomeWin     int
	PointSpread float64
	TotalPoints float64

	HomeRank float64
	AwayRank float64
	HomeElo  float64
	AwayElo  float64
	EloDiff  float64
	RankDiff float64

	// Performance rollups; zero-valued for games with no recorded drives
	// or plays, such as future games.
	HomePerf TeamGamePerformance
	AwayPerf TeamGamePerformance

	HomeRecentScored  float64
	HomeRecentAllowed float64
	AwayRecentScored  float64
	AwayRecentAllowed float64
}

type rankKey struct {
	TeamID int64
	Season int
	Week   int
}

// AssembleGameFeatures left-joins the per-team performance rollups and the
// AP Top 25 ranks onto every game. No game is ever dropped for missing
// event data; absent joins resolve to the documented defaults. Input
// order is preserved.
func AssembleGameFeatures(games []models.Game, perf []TeamGamePerformance, rankings []models.Ranking) []GameFeatures {
	homePerf := make(map[int64]TeamGamePerformance)
	awayPerf := make(map[int64]TeamGamePerformance)
	for _, p := range perf {
		if p.IsHomeOffense == 1 {
			homePerf[p.GameID] = p
		} else {
			awayPerf[p.GameID] = p
		}
	}

	apRanks := make(map[rankKey]int)
	for _, r := range rankings {
		if strings.ToLower(strings.TrimSpace(r.Poll)) != apPollName {
			continue
		}
		apRanks[rankKey{TeamID: r.TeamID, Season: r.Season, Week: r.Week}] = r.Rank
	}

	out := make([]GameFeatures, 0, len(games))
	for _, g := range games {
		f := GameFeatures{
			GameID:    g.ID,
			Season:    g.Season,
			Week:      g.Week,
			Completed: g.Completed,
			HomeID:    g.HomeID,
			HomeTeam:  g.HomeTeam,
			AwayID:    g.AwayID,
			AwayTeam:  g.AwayTeam,
		}

		if g.HomePoints != nil {
			f.HomePoints = float64(*g.HomePoints)
		}
		if g.AwayPoints != nil {
			f.AwayPoints = float64(*g.AwayPoints)
		}
		if g.Completed && g.HomePoints != nil && g.AwayPoints != nil && *g.HomePoints > *g.AwayPoints {
			f.HomeWin = 1
		}
		f.PointSpread = f.HomePoints - f.AwayPoints
		f.TotalPoints = f.HomePoints + f.AwayPoints

		f.HomeRank = DefaultRank
		if rank, ok := apRanks[rankKey{TeamID: g.HomeID, Season: g.Season, Week: g.Week}]; ok {
			f.HomeRank = float64(rank)
		}
		f.AwayRank = DefaultRank
		if rank, ok := apRanks[rankKey{TeamID: g.AwayID, Season: g.Season, Week: g.Week}]; ok {
			f.AwayRank = float64(rank)
		}

		f.HomeElo = DefaultElo
		if g.HomePregameElo != nil {
			f.HomeElo = *g.HomePregameElo
		}
		f.AwayElo = DefaultElo
		if g.AwayPregameElo != nil {
			f.AwayElo = *g.AwayPregameElo
		}

		// Always home minus away.
		f.EloDiff = f.HomeElo - f.AwayElo
		f.RankDiff = f.HomeRank - f.AwayRank

		f.HomePerf = homePerf[g.ID]
		f.AwayPerf = awayPerf[g.ID]

		out = append(out, f)
	}

	return out
}
