package booking

import (
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// store handles all database operations for game bookings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new BookingStore backed by the given database.
func New(db *sql.DB) BookingStore {
	return &store{
		db: db,
	}
}

func (s *store) FindGameWithContext(gameID, accountID string) (*GameContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, account_id, league_season_id, home_team_season_id, visitor_team_season_id,
		       field_id, start_time, umpire1, umpire2, umpire3, umpire4
		FROM games
		WHERE id = ? AND account_id = ?
	`, gameID, accountID)

	var game GameContext
	var startTime sql.NullInt64
	var umpires [4]sql.NullString
	err := row.Scan(
		&game.ID,
		&game.AccountID,
		&game.LeagueSeasonID,
		&game.HomeTeamSeasonID,
		&game.VisitorTeamSeasonID,
		&game.FieldID,
		&startTime,
		&umpires[0],
		&umpires[1],
		&umpires[2],
		&umpires[3],
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game %s: %w", gameID, err)
	}

	if startTime.Valid {
		t := time.Unix(startTime.Int64, 0).UTC()
		game.StartTime = &t
	}
	for _, u := range umpires {
		if u.Valid && u.String != "" {
			game.UmpireIDs = append(game.UmpireIDs, u.String)
		}
	}
	return &game, nil
}

func (s *store) CountTeamBookingsAtTime(teamSeasonID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	return s.count(`
		SELECT COUNT(*) FROM games
		WHERE start_time = ? AND league_season_id = ?
		  AND (home_team_season_id = ? OR visitor_team_season_id = ?)
		  AND id != ?
	`, at.Unix(), leagueSeasonID, teamSeasonID, teamSeasonID, excludeGameID)
}

func (s *store) CountUmpireBookingsAtTime(umpireID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	return s.count(`
		SELECT COUNT(*) FROM games
		WHERE start_time = ? AND league_season_id = ?
		  AND (umpire1 = ? OR umpire2 = ? OR umpire3 = ? OR umpire4 = ?)
		  AND id != ?
	`, at.Unix(), leagueSeasonID, umpireID, umpireID, umpireID, umpireID, excludeGameID)
}

func (s *store) CountFieldBookingsAtTime(fieldID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	return s.count(`
		SELECT COUNT(*) FROM games
		WHERE start_time = ? AND league_season_id = ? AND field_id = ?
		  AND id != ?
	`, at.Unix(), leagueSeasonID, fieldID, excludeGameID)
}

func (s *store) CountTeamGamesInRange(teamSeasonID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	return s.count(`
		SELECT COUNT(*) FROM games
		WHERE start_time >= ? AND start_time < ? AND league_season_id = ?
		  AND (home_team_season_id = ? OR visitor_team_season_id = ?)
		  AND id != ?
	`, start.Unix(), end.Unix(), leagueSeasonID, teamSeasonID, teamSeasonID, excludeGameID)
}

func (s *store) CountUmpireGamesInRange(umpireID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error) {
	return s.count(`
		SELECT COUNT(*) FROM games
		WHERE start_time >= ? AND start_time < ? AND league_season_id = ?
		  AND (umpire1 = ? OR umpire2 = ? OR umpire3 = ? OR umpire4 = ?)
		  AND id != ?
	`, start.Unix(), end.Unix(), leagueSeasonID, umpireID, umpireID, umpireID, umpireID, excludeGameID)
}

func (s *store) count(query string, args ...any) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("booking count query failed: %w", err)
	}
	return n, nil
}

// UpdateGameAssignment persists the field, start time and umpire slots for a
// single game in one statement, so a game's assignment is all-or-nothing.
func (s *store) UpdateGameAssignment(gameID string, update GameAssignmentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var umpires [4]any
	for i := range umpires {
		if i < len(update.UmpireIDs) {
			umpires[i] = update.UmpireIDs[i]
		}
	}

	result, err := s.db.Exec(`
		UPDATE games
		SET field_id = ?, start_time = ?, umpire1 = ?, umpire2 = ?, umpire3 = ?, umpire4 = ?
		WHERE id = ?
	`, update.FieldID, update.StartTime.Unix(), umpires[0], umpires[1], umpires[2], umpires[3], gameID)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", gameID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("game %s not found for update", gameID)
	}
	return nil
}
