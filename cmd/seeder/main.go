package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rwalker123/draco-sub018/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "league.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	accountID := "demo-account"
	seasonID := "demo-season"

	mustExec := func(query string, args ...any) {
		if _, err := db.Exec(query, args...); err != nil {
			log.Fatalf("Seed statement failed: %s", err)
		}
	}

	mustExec(`INSERT OR IGNORE INTO accounts (id, name, time_zone) VALUES (?, ?, ?)`,
		accountID, "Demo Baseball Association", "America/New_York")
	mustExec(`INSERT OR IGNORE INTO seasons (id, account_id, name, weekday_game_minutes, weekend_game_minutes) VALUES (?, ?, ?, ?, ?)`,
		seasonID, accountID, "2026 Spring", 120, 150)

	leagueSeasonID := "demo-league-season"
	mustExec(`INSERT OR IGNORE INTO league_seasons (id, season_id, league_id, league_name) VALUES (?, ?, ?, ?)`,
		leagueSeasonID, seasonID, "demo-league", "Recreational")

	teams := []string{"Hawks", "Cyclones", "Mudcats", "River Rats"}
	teamSeasonIDs := make([]string, len(teams))
	for i, name := range teams {
		teamSeasonIDs[i] = fmt.Sprintf("ts-%d", i+1)
		mustExec(`INSERT OR IGNORE INTO team_seasons (id, season_id, team_id, name, league_season_id) VALUES (?, ?, ?, ?, ?)`,
			teamSeasonIDs[i], seasonID, fmt.Sprintf("team-%d", i+1), name, leagueSeasonID)
	}

	fields := []struct {
		id        string
		name      string
		hasLights bool
		parallel  int
	}{
		{"field-1", "Riverside Park", true, 1},
		{"field-2", "Jefferson Complex", false, 2},
	}
	for _, f := range fields {
		mustExec(`INSERT OR IGNORE INTO fields (id, account_id, name, has_lights, max_parallel_games) VALUES (?, ?, ?, ?, ?)`,
			f.id, accountID, f.name, f.hasLights, f.parallel)
	}

	umpires := []string{"Angela Ruiz", "Sam Porter", "Dee Okafor"}
	for i, name := range umpires {
		mustExec(`INSERT OR IGNORE INTO umpires (id, account_id, name, max_games_per_day) VALUES (?, ?, ?, ?)`,
			fmt.Sprintf("ump-%d", i+1), accountID, name, 3)
	}

	// Weekday evenings on the lit field, weekend mornings on the complex.
	mustExec(`INSERT OR IGNORE INTO field_availability_rules
		(id, season_id, field_id, start_date, end_date, days_of_week_mask, start_time_local, end_time_local, start_increment_minutes, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"rule-weekday", seasonID, "field-1", "2026-04-06", "2026-06-26", 0b0011111, "18:00", "21:00", 90, true)
	mustExec(`INSERT OR IGNORE INTO field_availability_rules
		(id, season_id, field_id, start_date, end_date, days_of_week_mask, start_time_local, end_time_local, start_increment_minutes, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"rule-weekend", seasonID, "field-2", "2026-04-11", "2026-06-28", 0b1100000, "09:00", "17:00", 120, true)

	// A round of unscheduled games.
	pairs := [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}}
	for _, p := range pairs {
		mustExec(`INSERT OR IGNORE INTO games (id, account_id, season_id, league_season_id, home_team_season_id, visitor_team_season_id, min_umpires, duration_minutes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), accountID, seasonID, leagueSeasonID, teamSeasonIDs[p[0]], teamSeasonIDs[p[1]], 1, 120)
	}

	log.Info("Seeding complete", "account", accountID, "season", seasonID)
}
