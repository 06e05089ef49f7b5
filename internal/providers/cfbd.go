package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/LucasSeeley/Predictive-Analytics/internal/models"
)

const cfbdBaseURL = "https://api.collegefootballdata.com"

// CFBDClient fetches raw event data from the CollegeFootballData API.
// Requests share a rate limiter and a circuit breaker so a misbehaving
// upstream degrades ingestion instead of hammering it.
type CFBDClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewCFBDClient creates a CollegeFootballData API client. requestsPerSec
// bounds the request rate; breakerThreshold is the consecutive-failure
// count that opens the circuit.
func NewCFBDClient(apiKey string, requestsPerSec int, timeout time.Duration, breakerThreshold int, logger *logrus.Logger) *CFBDClient {
	if requestsPerSec <= 0 {
		requestsPerSec = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name: "cfbd",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(breakerThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &CFBDClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    cfbdBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

func (c *CFBDClient) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request %s failed: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("request %s returned status %d", path, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
		return nil, nil
	})
	return err
}

// CFBD API response structures
type cfbdGame struct {
	ID             int64      `json:"id"`
	Season         int        `json:"season"`
	Week           int        `json:"week"`
	SeasonType     string     `json:"seasonType"`
	StartDate      *time.Time `json:"startDate"`
	Completed      bool       `json:"completed"`
	NeutralSite    bool       `json:"neutralSite"`
	ConferenceGame bool       `json:"conferenceGame"`
	Venue          string     `json:"venue"`

	HomeID          int64     `json:"homeId"`
	HomeTeam        string    `json:"homeTeam"`
	HomeConference  string    `json:"homeConference"`
	HomePoints      *int      `json:"homePoints"`
	HomeLineScores  []int     `json:"homeLineScores"`
	HomePregameElo  *float64  `json:"homePregameElo"`
	AwayID          int64     `json:"awayId"`
	AwayTeam        string    `json:"awayTeam"`
	AwayConference  string    `json:"awayConference"`
	AwayPoints      *int      `json:"awayPoints"`
	AwayLineScores  []int     `json:"awayLineScores"`
	AwayPregameElo  *float64  `json:"awayPregameElo"`
	ExcitementIndex *float64  `json:"excitementIndex"`
}

// GetGames fetches all games for one season.
func (c *CFBDClient) GetGames(ctx context.Context, year int) ([]models.Game, error) {
	params := url.Values{"year": {fmt.Sprint(year)}}

	var raw []cfbdGame
	if err := c.get(ctx, "/games", params, &raw); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(raw))
	for _, g := range raw {
		game := models.Game{
			ID:              g.ID,
			Season:          g.Season,
			Week:            g.Week,
			SeasonType:      g.SeasonType,
			StartDate:       g.StartDate,
			Completed:       g.Completed,
			NeutralSite:     g.NeutralSite,
			ConferenceGame:  g.ConferenceGame,
			Venue:           g.Venue,
			HomeID:          g.HomeID,
			HomeTeam:        g.HomeTeam,
			HomeConference:  g.HomeConference,
			HomePoints:      g.HomePoints,
			HomePregameElo:  g.HomePregameElo,
			AwayID:          g.AwayID,
			AwayTeam:        g.AwayTeam,
			AwayConference:  g.AwayConference,
			AwayPoints:      g.AwayPoints,
			AwayPregameElo:  g.AwayPregameElo,
			ExcitementIndex: g.ExcitementIndex,
		}
		if scores, err := json.Marshal(g.HomeLineScores); err == nil {
			game.HomeLineScores = scores
		}
		if scores, err := json.Marshal(g.AwayLineScores); err == nil {
			game.AwayLineScores = scores
		}
		games = append(games, game)
	}
	return games, nil
}

type cfbdRankingWeek struct {
	Season     int    `json:"season"`
	SeasonType string `json:"seasonType"`
	Week       int    `json:"week"`
	Polls      []struct {
		Poll  string `json:"poll"`
		Ranks []struct {
			Rank            int    `json:"rank"`
			TeamID          int64  `json:"teamId"`
			School          string `json:"school"`
			Conference      string `json:"conference"`
			FirstPlaceVotes int    `json:"firstPlaceVotes"`
			Points          int    `json:"points"`
		} `json:"ranks"`
	} `json:"polls"`
}

// GetRankings fetches and flattens every poll entry for one season.
func (c *CFBDClient) GetRankings(ctx context.Context, year int) ([]models.Ranking, error) {
	params := url.Values{"year": {fmt.Sprint(year)}}

	var raw []cfbdRankingWeek
	if err := c.get(ctx, "/rankings", params, &raw); err != nil {
		return nil, err
	}

	var rankings []models.Ranking
	for _, week := range raw {
		for _, poll := range week.Polls {
			for _, entry := range poll.Ranks {
				rankings = append(rankings, models.Ranking{
					Season:          week.Season,
					SeasonType:      week.SeasonType,
					Week:            week.Week,
					Poll:            poll.Poll,
					Rank:            entry.Rank,
					TeamID:          entry.TeamID,
					School:          entry.School,
					Conference:      entry.Conference,
					FirstPlaceVotes: entry.FirstPlaceVotes,
					Points:          entry.Points,
				})
			}
		}
	}
	return rankings, nil
}

type cfbdDrive struct {
	ID               int64  `json:"id,string"`
	GameID           int64  `json:"gameId"`
	Offense          string `json:"offense"`
	OffenseConf      string `json:"offenseConference"`
	Defense          string `json:"defense"`
	DefenseConf      string `json:"defenseConference"`
	IsHomeOffense    bool   `json:"isHomeOffense"`
	DriveNumber      int    `json:"driveNumber"`
	Scoring          bool   `json:"scoring"`
	DriveResult      string `json:"driveResult"`
	Plays            int    `json:"plays"`
	Yards            int    `json:"yards"`
	StartPeriod      int    `json:"startPeriod"`
	EndPeriod        int    `json:"endPeriod"`
	StartYardsToGoal int    `json:"startYardsToGoal"`
	EndYardsToGoal   int    `json:"endYardsToGoal"`
}

// GetDrives fetches drives week by week for one season. A failed week is
// skipped with a warning; the upstream serves some weeks late in the
// season before others.
func (c *CFBDClient) GetDrives(ctx context.Context, year, maxWeeks int) ([]models.Drive, error) {
	var drives []models.Drive
	for week := 1; week <= maxWeeks; week++ {
		params := url.Values{"year": {fmt.Sprint(year)}, "week": {fmt.Sprint(week)}}

		var raw []cfbdDrive
		if err := c.get(ctx, "/drives", params, &raw); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warnf("Skipping drives for %d week %d: %v", year, week, err)
			continue
		}

		for _, d := range raw {
			drives = append(drives, models.Drive{
				ID:                d.ID,
				GameID:            d.GameID,
				Offense:           d.Offense,
				OffenseConference: d.OffenseConf,
				Defense:           d.Defense,
				DefenseConference: d.DefenseConf,
				IsHomeOffense:     d.IsHomeOffense,
				DriveNumber:       d.DriveNumber,
				Scoring:           d.Scoring,
				DriveResult:       d.DriveResult,
				Plays:             d.Plays,
				Yards:             d.Yards,
				StartPeriod:       d.StartPeriod,
				EndPeriod:         d.EndPeriod,
				StartYardsToGoal:  d.StartYardsToGoal,
				EndYardsToGoal:    d.EndYardsToGoal,
				Season:            year,
				Week:              week,
			})
		}
	}
	return drives, nil
}

type cfbdPlay struct {
	ID          int64    `json:"id,string"`
	DriveID     int64    `json:"driveId,string"`
	GameID      int64    `json:"gameId"`
	DriveNumber int      `json:"driveNumber"`
	PlayNumber  int      `json:"playNumber"`
	Offense     string   `json:"offense"`
	Defense     string   `json:"defense"`
	Home        string   `json:"home"`
	Away        string   `json:"away"`
	Period      int      `json:"period"`
	Down        int      `json:"down"`
	Distance    int      `json:"distance"`
	YardsGained int      `json:"yardsGained"`
	Scoring     bool     `json:"scoring"`
	PlayType    string   `json:"playType"`
	PlayText    string   `json:"playText"`
	PPA         *float64 `json:"ppa"`
}

// GetPlays fetches plays week by week for one season, skipping failed
// weeks the same way GetDrives does.
func (c *CFBDClient) GetPlays(ctx context.Context, year, maxWeeks int) ([]models.Play, error) {
	var plays []models.Play
	for week := 1; week <= maxWeeks; week++ {
		params := url.Values{"year": {fmt.Sprint(year)}, "week": {fmt.Sprint(week)}}

		var raw []cfbdPlay
		if err := c.get(ctx, "/plays", params, &raw); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warnf("Skipping plays for %d week %d: %v", year, week, err)
			continue
		}

		for _, p := range raw {
			plays = append(plays, models.Play{
				ID:          p.ID,
				DriveID:     p.DriveID,
				GameID:      p.GameID,
				DriveNumber: p.DriveNumber,
				PlayNumber:  p.PlayNumber,
				Offense:     p.Offense,
				Defense:     p.Defense,
				Home:        p.Home,
				Away:        p.Away,
				Period:      p.Period,
				Down:        p.Down,
				Distance:    p.Distance,
				YardsGained: p.YardsGained,
				Scoring:     p.Scoring,
				PlayType:    p.PlayType,
				PlayText:    p.PlayText,
				PPA:         p.PPA,
				Season:      year,
				Week:        week,
			})
		}
	}
	return plays, nil
}

type cfbdGameLines struct {
	ID         int64  `json:"id"`
	Season     int    `json:"season"`
	SeasonType string `json:"seasonType"`
	Week       int    `json:"week"`
	HomeTeamID int64  `json:"homeTeamId"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeamID int64  `json:"awayTeamId"`
	AwayTeam   string `json:"awayTeam"`
	Lines      []struct {
		Provider      string   `json:"provider"`
		Spread        *float64 `json:"spread"`
		SpreadOpen    *float64 `json:"spreadOpen"`
		OverUnder     *float64 `json:"overUnder"`
		OverUnderOpen *float64 `json:"overUnderOpen"`
		HomeMoneyline *int     `json:"homeMoneyline"`
		AwayMoneyline *int     `json:"awayMoneyline"`
	} `json:"lines"`
}

// GetLines fetches betting lines for one season, one row per provider
// per game.
func (c *CFBDClient) GetLines(ctx context.Context, year int) ([]models.MarketLine, error) {
	params := url.Values{"year": {fmt.Sprint(year)}}

	var raw []cfbdGameLines
	if err := c.get(ctx, "/lines", params, &raw); err != nil {
		return nil, err
	}

	var lines []models.MarketLine
	for _, game := range raw {
		for _, line := range game.Lines {
			provider := line.Provider
			if provider == "" {
				provider = "unknown"
			}
			lines = append(lines, models.MarketLine{
				GameID:        game.ID,
				Provider:      provider,
				Season:        game.Season,
				SeasonType:    game.SeasonType,
				Week:          game.Week,
				HomeTeamID:    game.HomeTeamID,
				HomeTeam:      game.HomeTeam,
				AwayTeamID:    game.AwayTeamID,
				AwayTeam:      game.AwayTeam,
				Spread:        line.Spread,
				SpreadOpen:    line.SpreadOpen,
				OverUnder:     line.OverUnder,
				OverUnderOpen: line.OverUnderOpen,
				HomeMoneyline: line.HomeMoneyline,
				AwayMoneyline: line.AwayMoneyline,
			})
		}
	}
	return lines, nil
}
