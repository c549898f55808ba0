package booking

import "time"

// BookingStore defines the durable-storage side of conflict checking and
// assignment persistence. Every count method takes an excludeGameID so a
// game's own stored booking never conflicts with re-applying it.
type BookingStore interface {
	// FindGameWithContext returns (nil, nil) when the game does not exist.
	FindGameWithContext(gameID, accountID string) (*GameContext, error)

	CountTeamBookingsAtTime(teamSeasonID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountUmpireBookingsAtTime(umpireID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountFieldBookingsAtTime(fieldID string, at time.Time, leagueSeasonID, excludeGameID string) (int, error)

	CountTeamGamesInRange(teamSeasonID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error)
	CountUmpireGamesInRange(umpireID string, start, end time.Time, leagueSeasonID, excludeGameID string) (int, error)

	UpdateGameAssignment(gameID string, update GameAssignmentUpdate) error
}
