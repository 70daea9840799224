// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"strings"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// serialToken marks surrogate-key columns in the schema templates. It is
// replaced per driver: SQLite rowid aliases vs Postgres bigserial.
const serialToken = "__SERIAL_PK__"

var schemaTemplates = []string{
	// Soccer star schema.
	`CREATE TABLE IF NOT EXISTS dim_time (
		time_key ` + serialToken + `,
		date_date TEXT NOT NULL UNIQUE,
		year INTEGER,
		month INTEGER,
		day INTEGER,
		weekday TEXT,
		is_weekend BOOLEAN
	)`,
	`CREATE TABLE IF NOT EXISTS dim_league (
		league_key ` + serialToken + `,
		api_league_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		country TEXT,
		season INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dim_team (
		team_key ` + serialToken + `,
		api_team_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		country TEXT,
		founded INTEGER,
		stadium_name TEXT,
		city TEXT,
		short_code TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_venue (
		venue_key ` + serialToken + `,
		api_venue_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		city TEXT,
		capacity INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dim_referee (
		referee_key ` + serialToken + `,
		name TEXT NOT NULL UNIQUE,
		nationality TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS fact_match (
		match_key ` + serialToken + `,
		api_match_id BIGINT NOT NULL UNIQUE,
		league_key BIGINT REFERENCES dim_league(league_key),
		season INTEGER,
		time_key BIGINT REFERENCES dim_time(time_key),
		venue_key BIGINT REFERENCES dim_venue(venue_key),
		referee_key BIGINT REFERENCES dim_referee(referee_key),
		home_team_key BIGINT REFERENCES dim_team(team_key),
		away_team_key BIGINT REFERENCES dim_team(team_key),
		home_goals INTEGER,
		away_goals INTEGER,
		attendance INTEGER,
		possession_home REAL,
		possession_away REAL
	)`,

	// Basketball star schema.
	`CREATE TABLE IF NOT EXISTS dim_date (
		date_key ` + serialToken + `,
		date_date TEXT NOT NULL UNIQUE,
		year INTEGER,
		month INTEGER,
		day INTEGER,
		day_of_week TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_league_basketball (
		league_key ` + serialToken + `,
		api_league_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		country TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_team_basketball (
		team_key ` + serialToken + `,
		api_team_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		city TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_player_basketball (
		player_key ` + serialToken + `,
		api_player_id BIGINT NOT NULL UNIQUE,
		full_name TEXT,
		position TEXT,
		nationality TEXT,
		birthdate TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS fact_game_basketball (
		game_key ` + serialToken + `,
		api_game_id BIGINT NOT NULL UNIQUE,
		date_key BIGINT REFERENCES dim_date(date_key),
		league_key BIGINT REFERENCES dim_league_basketball(league_key),
		home_team_key BIGINT REFERENCES dim_team_basketball(team_key),
		away_team_key BIGINT REFERENCES dim_team_basketball(team_key),
		home_score INTEGER,
		away_score INTEGER,
		status TEXT
	)`,

	// Formula 1 star schema.
	`CREATE TABLE IF NOT EXISTS dim_driver (
		driver_key ` + serialToken + `,
		api_driver_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		nationality TEXT,
		birthdate TEXT,
		number INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS dim_team_f1 (
		team_key ` + serialToken + `,
		api_team_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		base TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_circuit (
		circuit_key ` + serialToken + `,
		api_circuit_id BIGINT NOT NULL UNIQUE,
		name TEXT,
		length TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS dim_race (
		race_key ` + serialToken + `,
		api_race_id BIGINT NOT NULL UNIQUE,
		season INTEGER,
		race_name TEXT,
		race_type TEXT,
		race_date TEXT,
		circuit_key BIGINT REFERENCES dim_circuit(circuit_key)
	)`,
	`CREATE TABLE IF NOT EXISTS fact_race_result (
		result_key ` + serialToken + `,
		race_key BIGINT NOT NULL REFERENCES dim_race(race_key),
		driver_key BIGINT NOT NULL REFERENCES dim_driver(driver_key),
		team_key BIGINT REFERENCES dim_team_f1(team_key),
		position INTEGER,
		points REAL,
		laps INTEGER,
		race_time TEXT,
		UNIQUE (race_key, driver_key)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_fact_match_league ON fact_match(league_key)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_match_time ON fact_match(time_key)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_game_basketball_date ON fact_game_basketball(date_key)`,
	`CREATE INDEX IF NOT EXISTS idx_fact_race_result_race ON fact_race_result(race_key)`,
}

// schemaStatements renders the schema for a driver. The templates otherwise
// stick to SQL both SQLite and Postgres accept.
func schemaStatements(driver types.WarehouseDriver) []string {
	serial := "BIGSERIAL PRIMARY KEY"
	if driver == types.DriverSQLite {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	out := make([]string, len(schemaTemplates))
	for i, tmpl := range schemaTemplates {
		out[i] = strings.ReplaceAll(tmpl, serialToken, serial)
	}
	return out
}
