// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"context"
	"fmt"
	"time"
)

// Dimension upserts. Each keys on the natural identifier from the API,
// returns the surrogate key, and preserves previously loaded attributes when
// the incoming document omits them (COALESCE against the stored row). A zero
// natural key returns surrogate key 0, which nullKey maps to NULL in facts.

// nullStr converts empty strings to NULL so COALESCE retention works.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullI64(v int64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

func nullF64(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

// nullKey maps an absent surrogate key to NULL.
func nullKey(k int64) any {
	if k == 0 {
		return nil
	}
	return k
}

func upsertTime(ctx context.Context, q dbtx, day time.Time) (int64, error) {
	weekday := day.Weekday()
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_time (date_date, year, month, day, weekday, is_weekend)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (date_date) DO UPDATE SET year = excluded.year
		 RETURNING time_key`,
		day.Format("2006-01-02"), day.Year(), int(day.Month()), day.Day(),
		weekday.String(), weekday == time.Saturday || weekday == time.Sunday,
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_time: %w", err)
	}
	return key, nil
}

func upsertLeague(ctx context.Context, q dbtx, apiID int64, name, country string, season any) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_league (api_league_id, name, country, season)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (api_league_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_league.name),
			country = COALESCE(excluded.country, dim_league.country),
			season = COALESCE(excluded.season, dim_league.season)
		 RETURNING league_key`,
		apiID, nullStr(name), nullStr(country), season,
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_league: %w", err)
	}
	return key, nil
}

type teamDim struct {
	apiID   int64
	name    string
	country string
	founded any
	stadium string
	city    string
	code    string
}

func upsertTeam(ctx context.Context, q dbtx, d teamDim) (int64, error) {
	if d.apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_team (api_team_id, name, country, founded, stadium_name, city, short_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (api_team_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_team.name),
			country = COALESCE(excluded.country, dim_team.country),
			founded = COALESCE(excluded.founded, dim_team.founded),
			stadium_name = COALESCE(excluded.stadium_name, dim_team.stadium_name),
			city = COALESCE(excluded.city, dim_team.city),
			short_code = COALESCE(excluded.short_code, dim_team.short_code)
		 RETURNING team_key`,
		d.apiID, nullStr(d.name), nullStr(d.country), d.founded,
		nullStr(d.stadium), nullStr(d.city), nullStr(d.code),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_team: %w", err)
	}
	return key, nil
}

func upsertVenue(ctx context.Context, q dbtx, apiID int64, name, city string, capacity any) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_venue (api_venue_id, name, city, capacity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (api_venue_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_venue.name),
			city = COALESCE(excluded.city, dim_venue.city),
			capacity = COALESCE(excluded.capacity, dim_venue.capacity)
		 RETURNING venue_key`,
		apiID, nullStr(name), nullStr(city), capacity,
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_venue: %w", err)
	}
	return key, nil
}

// upsertReferee keys on the referee's name. The fixtures endpoint only
// carries a bare name string, so that is the natural key available.
func upsertReferee(ctx context.Context, q dbtx, name, nationality string) (int64, error) {
	if name == "" {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_referee (name, nationality)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET
			nationality = COALESCE(excluded.nationality, dim_referee.nationality)
		 RETURNING referee_key`,
		name, nullStr(nationality),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_referee: %w", err)
	}
	return key, nil
}

func upsertDate(ctx context.Context, q dbtx, day time.Time) (int64, error) {
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_date (date_date, year, month, day, day_of_week)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (date_date) DO UPDATE SET year = excluded.year
		 RETURNING date_key`,
		day.Format("2006-01-02"), day.Year(), int(day.Month()), day.Day(),
		day.Weekday().String(),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_date: %w", err)
	}
	return key, nil
}

func upsertLeagueBasketball(ctx context.Context, q dbtx, apiID int64, name, country string) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_league_basketball (api_league_id, name, country)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (api_league_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_league_basketball.name),
			country = COALESCE(excluded.country, dim_league_basketball.country)
		 RETURNING league_key`,
		apiID, nullStr(name), nullStr(country),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_league_basketball: %w", err)
	}
	return key, nil
}

func upsertTeamBasketball(ctx context.Context, q dbtx, apiID int64, name, city string) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_team_basketball (api_team_id, name, city)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (api_team_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_team_basketball.name),
			city = COALESCE(excluded.city, dim_team_basketball.city)
		 RETURNING team_key`,
		apiID, nullStr(name), nullStr(city),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_team_basketball: %w", err)
	}
	return key, nil
}

func upsertPlayerBasketball(ctx context.Context, q dbtx, apiID int64, fullName, position, nationality, birthdate string) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_player_basketball (api_player_id, full_name, position, nationality, birthdate)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (api_player_id) DO UPDATE SET
			full_name = COALESCE(excluded.full_name, dim_player_basketball.full_name),
			position = COALESCE(excluded.position, dim_player_basketball.position),
			nationality = COALESCE(excluded.nationality, dim_player_basketball.nationality),
			birthdate = COALESCE(excluded.birthdate, dim_player_basketball.birthdate)
		 RETURNING player_key`,
		apiID, nullStr(fullName), nullStr(position), nullStr(nationality), nullStr(birthdate),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_player_basketball: %w", err)
	}
	return key, nil
}

func upsertDriver(ctx context.Context, q dbtx, apiID int64, name, nationality, birthdate string, number any) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_driver (api_driver_id, name, nationality, birthdate, number)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (api_driver_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_driver.name),
			nationality = COALESCE(excluded.nationality, dim_driver.nationality),
			birthdate = COALESCE(excluded.birthdate, dim_driver.birthdate),
			number = COALESCE(excluded.number, dim_driver.number)
		 RETURNING driver_key`,
		apiID, nullStr(name), nullStr(nationality), nullStr(birthdate), number,
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_driver: %w", err)
	}
	return key, nil
}

func upsertTeamF1(ctx context.Context, q dbtx, apiID int64, name, base string) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_team_f1 (api_team_id, name, base)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (api_team_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_team_f1.name),
			base = COALESCE(excluded.base, dim_team_f1.base)
		 RETURNING team_key`,
		apiID, nullStr(name), nullStr(base),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_team_f1: %w", err)
	}
	return key, nil
}

func upsertCircuit(ctx context.Context, q dbtx, apiID int64, name, length string) (int64, error) {
	if apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_circuit (api_circuit_id, name, length)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (api_circuit_id) DO UPDATE SET
			name = COALESCE(excluded.name, dim_circuit.name),
			length = COALESCE(excluded.length, dim_circuit.length)
		 RETURNING circuit_key`,
		apiID, nullStr(name), nullStr(length),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_circuit: %w", err)
	}
	return key, nil
}

type raceDim struct {
	apiID      int64
	season     any
	name       string
	raceType   string
	date       string
	circuitKey int64
}

func upsertRace(ctx context.Context, q dbtx, d raceDim) (int64, error) {
	if d.apiID == 0 {
		return 0, nil
	}
	var key int64
	err := q.QueryRowContext(ctx,
		`INSERT INTO dim_race (api_race_id, season, race_name, race_type, race_date, circuit_key)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (api_race_id) DO UPDATE SET
			season = COALESCE(excluded.season, dim_race.season),
			race_name = COALESCE(excluded.race_name, dim_race.race_name),
			race_type = COALESCE(excluded.race_type, dim_race.race_type),
			race_date = COALESCE(excluded.race_date, dim_race.race_date),
			circuit_key = COALESCE(excluded.circuit_key, dim_race.circuit_key)
		 RETURNING race_key`,
		d.apiID, d.season, nullStr(d.name), nullStr(d.raceType), nullStr(d.date), nullKey(d.circuitKey),
	).Scan(&key)
	if err != nil {
		return 0, fmt.Errorf("upserting dim_race: %w", err)
	}
	return key, nil
}
