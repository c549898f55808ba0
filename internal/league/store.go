package league

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// store handles all database reads for league reference data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new LeagueStore backed by the given database.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

func (s *store) FindAccount(accountID string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, time_zone FROM accounts WHERE id = ?", accountID)

	var account Account
	err := row.Scan(&account.ID, &account.Name, &account.TimeZone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return &account, nil
}

func (s *store) FindSeason(seasonID, accountID string) (*Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, account_id, name, weekday_game_minutes, weekend_game_minutes
		FROM seasons WHERE id = ? AND account_id = ?
	`, seasonID, accountID)

	var season Season
	err := row.Scan(&season.ID, &season.AccountID, &season.Name, &season.WeekdayGameMinutes, &season.WeekendGameMinutes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find season %s: %w", seasonID, err)
	}
	return &season, nil
}

func (s *store) ListSeasonTeams(seasonID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT ts.id, ts.team_id, ts.name, ts.league_season_id, ls.league_name, ts.division_season_id
		FROM team_seasons ts
		LEFT JOIN league_seasons ls ON ls.id = ts.league_season_id
		WHERE ts.season_id = ?
		ORDER BY ts.name
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		var leagueSeasonID sql.NullString
		if err := rows.Scan(&team.ID, &team.TeamID, &team.Name, &leagueSeasonID, &team.LeagueName, &team.DivisionSeasonID); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		team.LeagueSeasonID = leagueSeasonID.String
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *store) ListAccountFields(accountID string) ([]Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, has_lights, max_parallel_games
		FROM fields
		WHERE account_id = ?
		ORDER BY name
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var fields []Field
	for rows.Next() {
		var field Field
		if err := rows.Scan(&field.ID, &field.Name, &field.HasLights, &field.MaxParallelGames); err != nil {
			log.Error("Failed to scan field row", "error", err)
			continue
		}
		fields = append(fields, field)
	}
	return fields, rows.Err()
}

func (s *store) ListAccountUmpires(accountID string) ([]Umpire, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, max_games_per_day
		FROM umpires
		WHERE account_id = ?
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list umpires for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var umpires []Umpire
	for rows.Next() {
		var umpire Umpire
		if err := rows.Scan(&umpire.ID, &umpire.Name, &umpire.MaxGamesPerDay); err != nil {
			log.Error("Failed to scan umpire row", "error", err)
			continue
		}
		umpires = append(umpires, umpire)
	}
	return umpires, rows.Err()
}

func (s *store) ListSeasonGames(seasonID string) ([]GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, league_season_id, home_team_season_id, visitor_team_season_id,
		       field_id, start_time, duration_minutes, min_umpires, preferred_field_ids,
		       earliest_start, latest_end
		FROM games
		WHERE season_id = ?
		ORDER BY id
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	var games []GameInfo
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

func (s *store) ListAvailabilityRules(seasonID string) ([]AvailabilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, season_id, field_id, start_date, end_date, days_of_week_mask,
		       start_time_local, end_time_local, start_increment_minutes, enabled
		FROM field_availability_rules
		WHERE season_id = ?
		ORDER BY id
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules for season %s: %w", seasonID, err)
	}
	defer rows.Close()

	var rules []AvailabilityRule
	for rows.Next() {
		var rule AvailabilityRule
		if err := rows.Scan(&rule.ID, &rule.SeasonID, &rule.FieldID, &rule.StartDate, &rule.EndDate,
			&rule.DaysOfWeekMask, &rule.StartTimeLocal, &rule.EndTimeLocal,
			&rule.StartIncrementMinutes, &rule.Enabled); err != nil {
			log.Error("Failed to scan availability rule row", "error", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// scanGame is a helper to scan a single game row into a GameInfo.
func scanGame(scanner interface{ Scan(...any) error }) (*GameInfo, error) {
	var game GameInfo
	var startTime, earliestStart, latestEnd sql.NullInt64
	var preferredFieldsJSON sql.NullString

	err := scanner.Scan(
		&game.ID,
		&game.LeagueSeasonID,
		&game.HomeTeamSeasonID,
		&game.VisitorTeamSeasonID,
		&game.FieldID,
		&startTime,
		&game.DurationMinutes,
		&game.MinUmpires,
		&preferredFieldsJSON,
		&earliestStart,
		&latestEnd,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		t := time.Unix(startTime.Int64, 0).UTC()
		game.StartTime = &t
	}
	if earliestStart.Valid {
		t := time.Unix(earliestStart.Int64, 0).UTC()
		game.EarliestStart = &t
	}
	if latestEnd.Valid {
		t := time.Unix(latestEnd.Int64, 0).UTC()
		game.LatestEnd = &t
	}
	if preferredFieldsJSON.Valid && preferredFieldsJSON.String != "" {
		if err := json.Unmarshal([]byte(preferredFieldsJSON.String), &game.PreferredFieldIDs); err != nil {
			return nil, fmt.Errorf("failed to decode preferred fields for game %s: %w", game.ID, err)
		}
	}
	return &game, nil
}
