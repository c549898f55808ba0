package booking

import "time"

// GameContext is the durable scheduling context of one game: the references
// the constraint checks need plus its currently stored assignment, if any.
type GameContext struct {
	ID                  string     `json:"id"`
	AccountID           string     `json:"account_id"`
	LeagueSeasonID      string     `json:"league_season_id"`
	HomeTeamSeasonID    string     `json:"home_team_season_id"`
	VisitorTeamSeasonID string     `json:"visitor_team_season_id"`
	FieldID             *string    `json:"field_id,omitempty"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	UmpireIDs           []string   `json:"umpire_ids,omitempty"`
}

// GameAssignmentUpdate is the write payload for a single game's assignment.
type GameAssignmentUpdate struct {
	FieldID   string
	StartTime time.Time
	UmpireIDs []string
}
