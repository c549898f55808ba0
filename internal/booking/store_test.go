package booking_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rwalker123/draco-sub018/internal/booking"
	"github.com/rwalker123/draco-sub018/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (booking.BookingStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := booking.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

// seedLeague inserts the account, season, league, teams, fields and umpires
// the games tests hang off.
func seedLeague(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO accounts (id, name, time_zone) VALUES ('acct-1', 'Test League', 'America/New_York')`,
		`INSERT INTO seasons (id, account_id, name) VALUES ('season-1', 'acct-1', '2026 Spring')`,
		`INSERT INTO league_seasons (id, season_id, league_id) VALUES ('ls-1', 'season-1', 'league-1')`,
		`INSERT INTO team_seasons (id, season_id, team_id, name, league_season_id) VALUES
			('ts-1', 'season-1', 'team-1', 'Hawks', 'ls-1'),
			('ts-2', 'season-1', 'team-2', 'Cyclones', 'ls-1'),
			('ts-3', 'season-1', 'team-3', 'Mudcats', 'ls-1'),
			('ts-4', 'season-1', 'team-4', 'River Rats', 'ls-1')`,
		`INSERT INTO fields (id, account_id, name, max_parallel_games) VALUES ('field-1', 'acct-1', 'Riverside', 1)`,
		`INSERT INTO umpires (id, account_id, name) VALUES ('ump-1', 'acct-1', 'Angela Ruiz'), ('ump-2', 'acct-1', 'Sam Porter')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func insertGame(t *testing.T, db *sql.DB, id, home, visitor string, fieldID *string, at *time.Time, umpire1 *string) {
	t.Helper()
	var start any
	if at != nil {
		start = at.Unix()
	}
	_, err := db.Exec(`INSERT INTO games
		(id, account_id, season_id, league_season_id, home_team_season_id, visitor_team_season_id, field_id, start_time, umpire1)
		VALUES (?, 'acct-1', 'season-1', 'ls-1', ?, ?, ?, ?, ?)`,
		id, home, visitor, fieldID, start, umpire1)
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}

func TestFindGameWithContext(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedLeague(t, db)

	start := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	insertGame(t, db, "game-1", "ts-1", "ts-2", ptr("field-1"), &start, ptr("ump-1"))
	insertGame(t, db, "game-2", "ts-3", "ts-4", nil, nil, nil)

	t.Run("scheduled game carries its assignment", func(t *testing.T) {
		game, err := store.FindGameWithContext("game-1", "acct-1")
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Equal(t, "ls-1", game.LeagueSeasonID)
		assert.Equal(t, "ts-1", game.HomeTeamSeasonID)
		assert.Equal(t, "ts-2", game.VisitorTeamSeasonID)
		require.NotNil(t, game.FieldID)
		assert.Equal(t, "field-1", *game.FieldID)
		require.NotNil(t, game.StartTime)
		assert.True(t, game.StartTime.Equal(start))
		assert.Equal(t, []string{"ump-1"}, game.UmpireIDs)
	})

	t.Run("unscheduled game has no assignment", func(t *testing.T) {
		game, err := store.FindGameWithContext("game-2", "acct-1")
		require.NoError(t, err)
		require.NotNil(t, game)
		assert.Nil(t, game.FieldID)
		assert.Nil(t, game.StartTime)
		assert.Empty(t, game.UmpireIDs)
	})

	t.Run("unknown game returns nil", func(t *testing.T) {
		game, err := store.FindGameWithContext("game-99", "acct-1")
		require.NoError(t, err)
		assert.Nil(t, game)
	})

	t.Run("a game is only visible through its own account", func(t *testing.T) {
		game, err := store.FindGameWithContext("game-1", "acct-99")
		require.NoError(t, err)
		assert.Nil(t, game)
	})
}

func TestBookingCountsAtTime(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedLeague(t, db)

	at := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	insertGame(t, db, "game-1", "ts-1", "ts-2", ptr("field-1"), &at, ptr("ump-1"))

	t.Run("team booking counted for home and visitor", func(t *testing.T) {
		for _, teamID := range []string{"ts-1", "ts-2"} {
			n, err := store.CountTeamBookingsAtTime(teamID, at, "ls-1", "other-game")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		}

		n, err := store.CountTeamBookingsAtTime("ts-3", at, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("umpire and field bookings counted", func(t *testing.T) {
		n, err := store.CountUmpireBookingsAtTime("ump-1", at, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = store.CountFieldBookingsAtTime("field-1", at, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("other instants do not collide", func(t *testing.T) {
		later := at.Add(time.Hour)
		n, err := store.CountFieldBookingsAtTime("field-1", later, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("the excluded game does not count against itself", func(t *testing.T) {
		n, err := store.CountTeamBookingsAtTime("ts-1", at, "ls-1", "game-1")
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		n, err = store.CountFieldBookingsAtTime("field-1", at, "ls-1", "game-1")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestGamesInRangeCounts(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedLeague(t, db)

	morning := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 5, 2, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 5, 3, 14, 0, 0, 0, time.UTC)
	insertGame(t, db, "game-1", "ts-1", "ts-2", ptr("field-1"), &morning, ptr("ump-1"))
	insertGame(t, db, "game-2", "ts-1", "ts-3", ptr("field-1"), &evening, ptr("ump-1"))
	insertGame(t, db, "game-3", "ts-1", "ts-4", ptr("field-1"), &nextDay, ptr("ump-2"))

	dayStart := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	t.Run("counts games within the half-open day", func(t *testing.T) {
		n, err := store.CountTeamGamesInRange("ts-1", dayStart, dayEnd, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = store.CountUmpireGamesInRange("ump-1", dayStart, dayEnd, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = store.CountUmpireGamesInRange("ump-2", dayStart, dayEnd, "ls-1", "other-game")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("the excluded game is not counted", func(t *testing.T) {
		n, err := store.CountTeamGamesInRange("ts-1", dayStart, dayEnd, "ls-1", "game-1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestUpdateGameAssignment(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedLeague(t, db)

	insertGame(t, db, "game-1", "ts-1", "ts-2", nil, nil, nil)
	start := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)

	t.Run("persists field, time and umpires", func(t *testing.T) {
		err := store.UpdateGameAssignment("game-1", booking.GameAssignmentUpdate{
			FieldID:   "field-1",
			StartTime: start,
			UmpireIDs: []string{"ump-1", "ump-2"},
		})
		require.NoError(t, err)

		game, err := store.FindGameWithContext("game-1", "acct-1")
		require.NoError(t, err)
		require.NotNil(t, game)
		require.NotNil(t, game.FieldID)
		assert.Equal(t, "field-1", *game.FieldID)
		assert.True(t, game.StartTime.Equal(start))
		assert.Equal(t, []string{"ump-1", "ump-2"}, game.UmpireIDs)
	})

	t.Run("reassignment clears stale umpire slots", func(t *testing.T) {
		err := store.UpdateGameAssignment("game-1", booking.GameAssignmentUpdate{
			FieldID:   "field-1",
			StartTime: start.Add(time.Hour),
			UmpireIDs: []string{"ump-2"},
		})
		require.NoError(t, err)

		game, err := store.FindGameWithContext("game-1", "acct-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"ump-2"}, game.UmpireIDs)
	})

	t.Run("unknown game is an error", func(t *testing.T) {
		err := store.UpdateGameAssignment("game-99", booking.GameAssignmentUpdate{
			FieldID:   "field-1",
			StartTime: start,
		})
		assert.Error(t, err)
	})
}
