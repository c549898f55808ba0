package league

import "time"

// Account represents a league organization. The timezone is mandatory for
// any scheduling work; it is nullable here because legacy accounts may not
// have one configured yet.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// Season represents one season of play within an account. The game-minute
// values are duration hints for the solver, not enforced limits.
type Season struct {
	ID                 string `json:"id"`
	AccountID          string `json:"account_id"`
	Name               string `json:"name"`
	WeekdayGameMinutes *int   `json:"weekday_game_minutes,omitempty"`
	WeekendGameMinutes *int   `json:"weekend_game_minutes,omitempty"`
}

// Team represents one roster's participation in a season.
type Team struct {
	ID               string  `json:"id"` // team-season identifier
	TeamID           string  `json:"team_id"`
	Name             string  `json:"name"`
	LeagueSeasonID   string  `json:"league_season_id"`
	LeagueName       *string `json:"league_name,omitempty"`
	DivisionSeasonID *string `json:"division_season_id,omitempty"`
}

// Field is a playable venue. MaxParallelGames is the number of games the
// field can host at an overlapping time, e.g. multiple diamonds at one complex.
type Field struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	HasLights        bool   `json:"has_lights"`
	MaxParallelGames int    `json:"max_parallel_games"`
}

// Umpire is an official available for assignment. MaxGamesPerDay, when set,
// overrides any default daily cap from the solver constraints.
type Umpire struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	MaxGamesPerDay *int    `json:"max_games_per_day,omitempty"`
}

// GameInfo is one game of a season as stored, scheduled or not.
type GameInfo struct {
	ID                  string     `json:"id"`
	LeagueSeasonID      string     `json:"league_season_id"`
	HomeTeamSeasonID    string     `json:"home_team_season_id"`
	VisitorTeamSeasonID string     `json:"visitor_team_season_id"`
	FieldID             *string    `json:"field_id,omitempty"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	DurationMinutes     *int       `json:"duration_minutes,omitempty"`
	MinUmpires          *int       `json:"min_umpires,omitempty"`
	PreferredFieldIDs   []string   `json:"preferred_field_ids,omitempty"`
	EarliestStart       *time.Time `json:"earliest_start,omitempty"`
	LatestEnd           *time.Time `json:"latest_end,omitempty"`
}

// Scheduled reports whether the game already has a field and start time.
func (g GameInfo) Scheduled() bool {
	return g.FieldID != nil && g.StartTime != nil
}

// AvailabilityRule is the recurring description of when a field may host
// games. Dates are calendar dates ("2006-01-02", end inclusive), times are
// local wall-clock ("15:04") resolved through the account timezone, and the
// weekday mask sets bit i for weekday i with Monday = 0.
type AvailabilityRule struct {
	ID                    string `json:"id"`
	SeasonID              string `json:"season_id"`
	FieldID               string `json:"field_id"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	DaysOfWeekMask        int    `json:"days_of_week_mask"`
	StartTimeLocal        string `json:"start_time_local"`
	EndTimeLocal          string `json:"end_time_local"`
	StartIncrementMinutes int    `json:"start_increment_minutes"`
	Enabled               bool   `json:"enabled"`
}
