package models

import (
	"time"

	"gorm.io/datatypes"
)

// Game is one row of the raw cfb_games table, keyed by the upstream
// CollegeFootballData game id. Final points and pregame Elo stay nullable
// until the game completes; downstream features resolve the documented
// defaults (Elo 1500) instead of reading nil.
type Game struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Season         int        `gorm:"index:idx_games_season_week" json:"season"`
	Week           int        `gorm:"index:idx_games_season_week" json:"week"`
	SeasonType     string     `json:"season_type"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Completed      bool       `json:"completed"`
	NeutralSite    bool       `json:"neutral_site"`
	ConferenceGame bool       `json:"conference_game"`
	Venue          string     `json:"venue"`

	HomeID         int64          `gorm:"index" json:"home_id"`
	HomeTeam       string         `json:"home_team"`
	HomeConference string         `json:"home_conference"`
	HomePoints     *int           `json:"home_points,omitempty"`
	HomeLineScores datatypes.JSON `json:"home_line_scores,omitempty"`
	HomePregameElo *float64       `json:"home_pregame_elo,omitempty"`

	AwayID         int64          `gorm:"index" json:"away_id"`
	AwayTeam       string         `json:"away_team"`
	AwayConference string         `json:"away_conference"`
	AwayPoints     *int           `json:"away_points,omitempty"`
	AwayLineScores datatypes.JSON `json:"away_line_scores,omitempty"`
	AwayPregameElo *float64       `json:"away_pregame_elo,omitempty"`

	ExcitementIndex *float64  `json:"excitement_index,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Game) TableName() string {
	return "cfb_games"
}

// Ranking is one poll entry for one team in one week. The feature
// assembler only consumes the "AP Top 25" poll, matched case-insensitively.
type Ranking struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Season          int    `gorm:"uniqueIndex:idx_rankings_key" json:"season"`
	SeasonType      string `gorm:"uniqueIndex:idx_rankings_key" json:"season_type"`
	Week            int    `gorm:"uniqueIndex:idx_rankings_key" json:"week"`
	Poll            string `gorm:"uniqueIndex:idx_rankings_key" json:"poll"`
	TeamID          int64  `gorm:"uniqueIndex:idx_rankings_key" json:"team_id"`
	School          string `json:"school"`
	Conference      string `json:"conference"`
	Rank            int    `json:"rank"`
	FirstPlaceVotes int    `json:"first_place_votes"`
	Points          int    `json:"points"`
}

// TableName specifies the table name for GORM
func (Ranking) TableName() string {
	return "cfb_rankings"
}
