package models

import "time"

// MarketLine is one sportsbook's line for one game. Spread follows the
// betting convention: negative means the home team is favored. A game can
// carry one row per provider; (GameID, Provider) is the natural key.
type MarketLine struct {
	GameID        int64    `gorm:"primaryKey;autoIncrement:false" json:"game_id"`
	Provider      string   `gorm:"primaryKey" json:"provider"`
	Season        int      `gorm:"index" json:"season"`
	SeasonType    string   `json:"season_type"`
	Week          int      `json:"week"`
	HomeTeamID    int64    `gorm:"index" json:"home_team_id"`
	HomeTeam      string   `json:"home_team"`
	AwayTeamID    int64    `gorm:"index" json:"away_team_id"`
	AwayTeam      string   `json:"away_team"`
	Spread        *float64 `json:"spread,omitempty"`
	SpreadOpen    *float64 `json:"spread_open,omitempty"`
	OverUnder     *float64 `json:"over_under,omitempty"`
	OverUnderOpen *float64 `json:"over_under_open,omitempty"`
	HomeMoneyline *int     `json:"home_moneyline,omitempty"`
	AwayMoneyline *int     `json:"away_moneyline,omitempty"`
}

// TableName specifies the table name for GORM
func (MarketLine) TableName() string {
	return "cfb_lines"
}

// BettingRecommendation is a derived row joining a prediction with its
// market line. Recommendation is nil when either spread is unknown. The
// table is wholly derived and fully replaced on every pipeline run.
type BettingRecommendation struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Season          int      `gorm:"index:idx_best_bets_key" json:"season"`
	Week            int      `gorm:"index:idx_best_bets_key" json:"week"`
	HomeID          int64    `gorm:"index:idx_best_bets_key" json:"home_id"`
	AwayID          int64    `gorm:"index:idx_best_bets_key" json:"away_id"`
	HomeTeam        string   `json:"home_team"`
	AwayTeam        string   `json:"away_team"`
	PredictedSpread float64  `json:"point_spread_pred"`
	MarketSpread    *float64 `json:"vegas_spread,omitempty"`
	Recommendation  *string  `json:"recommendation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (BettingRecommendation) TableName() string {
	return "ai_best_bets"
}
