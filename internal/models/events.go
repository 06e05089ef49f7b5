package models

// Drive is an immutable raw event record: one offensive possession within a
// game. Offense is the offense's team name as reported upstream; a team is
// consistently home or away within a single game, so IsHomeOffense is
// constant across a (game, offense) group.
type Drive struct {
	ID                int64  `gorm:"primaryKey" json:"id"`
	GameID            int64  `gorm:"index" json:"game_id"`
	Offense           string `gorm:"index" json:"offense"`
	OffenseConference string `json:"offense_conference"`
	Defense           string `json:"defense"`
	DefenseConference string `json:"defense_conference"`
	IsHomeOffense     bool   `json:"is_home_offense"`
	DriveNumber       int    `json:"drive_number"`
	Scoring           bool   `json:"scoring"`
	DriveResult       string `json:"drive_result"`
	Plays             int    `json:"plays"`
	Yards             int    `json:"yards"`
	StartPeriod       int    `json:"start_period"`
	EndPeriod         int    `json:"end_period"`
	StartYardsToGoal  int    `json:"start_yards_to_goal"`
	EndYardsToGoal    int    `json:"end_yards_to_goal"`
	Season            int    `gorm:"index" json:"season"`
	Week              int    `json:"week"`
}

// TableName specifies the table name for GORM
func (Drive) TableName() string {
	return "cfb_drives"
}

// Play is an immutable raw event record: a single down within a drive.
// PPA (predicted points added) is supplied upstream and is nullable; the
// aggregation layer treats a missing value as 0.
type Play struct {
	ID          int64    `gorm:"primaryKey" json:"id"`
	DriveID     int64    `gorm:"index" json:"drive_id"`
	GameID      int64    `gorm:"index" json:"game_id"`
	DriveNumber int      `json:"drive_number"`
	PlayNumber  int      `json:"play_number"`
	Offense     string   `gorm:"index" json:"offense"`
	Defense     string   `json:"defense"`
	Home        string   `json:"home"`
	Away        string   `json:"away"`
	Period      int      `json:"period"`
	Down        int      `json:"down"`
	Distance    int      `json:"distance"`
	YardsGained int      `json:"yards_gained"`
	Scoring     bool     `json:"scoring"`
	PlayType    string   `json:"play_type"`
	PlayText    string   `json:"play_text"`
	PPA         *float64 `gorm:"column:ppa" json:"ppa,omitempty"`
	Season      int      `gorm:"index" json:"season"`
	Week        int      `json:"week"`
}

// TableName specifies the table name for GORM
func (Play) TableName() string {
	return "cfb_plays"
}
