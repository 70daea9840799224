// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"context"
	"io"
	"strings"
)

// migrateF1 loads the Formula 1 staging collections. Driver, team, and race
// documents populate their dimensions; result-shaped documents (staged from
// the race results endpoints) populate the fact table.
func (s *Store) migrateF1(ctx context.Context, src DocumentSource, w io.Writer) (Summary, error) {
	var total Summary

	driverColls, err := collectionsMatching(ctx, src, "f1_", "drivers")
	if err != nil {
		return total, err
	}
	// Standings collections mention drivers too but hold ranking documents.
	driverColls = excludeMatching(driverColls, "rankings")
	sum, err := s.migrateDocs(ctx, src, driverColls, w, loadDriver)
	if err != nil {
		return total, err
	}
	total.add(sum)

	teamColls, err := collectionsMatching(ctx, src, "f1_", "teams")
	if err != nil {
		return total, err
	}
	teamColls = excludeMatching(teamColls, "rankings")
	sum, err = s.migrateDocs(ctx, src, teamColls, w, loadTeamF1)
	if err != nil {
		return total, err
	}
	total.add(sum)

	raceColls, err := collectionsMatching(ctx, src, "f1_", "races")
	if err != nil {
		return total, err
	}
	sum, err = s.migrateDocs(ctx, src, raceColls, w, loadRace)
	if err != nil {
		return total, err
	}
	total.add(sum)

	resultColls, err := collectionsMatching(ctx, src, "f1_", "results")
	if err != nil {
		return total, err
	}
	sum, err = s.migrateDocs(ctx, src, resultColls, w, loadRaceResult)
	if err != nil {
		return total, err
	}
	total.add(sum)

	return total, nil
}

func excludeMatching(names []string, fragment string) []string {
	var out []string
	for _, name := range names {
		if !strings.Contains(name, fragment) {
			out = append(out, name)
		}
	}
	return out
}

func loadDriver(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	driverID, ok := i64(doc, "id")
	if !ok || driverID == 0 {
		return false, nil
	}
	number, numberOK := i64(doc, "number")
	_, err := upsertDriver(ctx, tx, driverID,
		str(doc, "name"), str(doc, "nationality"), str(doc, "birthdate"),
		nullI64(number, numberOK))
	if err != nil {
		return false, err
	}
	return true, nil
}

func loadTeamF1(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	teamID, ok := i64(doc, "id")
	if !ok || teamID == 0 {
		return false, nil
	}
	_, err := upsertTeamF1(ctx, tx, teamID, str(doc, "name"), str(doc, "base"))
	if err != nil {
		return false, err
	}
	return true, nil
}

// loadRace upserts a race and the circuit it runs on.
func loadRace(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	raceID, ok := i64(doc, "id")
	if !ok || raceID == 0 {
		return false, nil
	}

	var circuitKey int64
	circuitID, _ := i64(doc, "circuit", "id")
	if circuitID != 0 {
		var err error
		circuitKey, err = upsertCircuit(ctx, tx, circuitID,
			str(doc, "circuit", "name"), str(doc, "circuit", "length"))
		if err != nil {
			return false, err
		}
	}

	season, seasonOK := i64(doc, "season")
	name := str(doc, "competition", "name")
	if name == "" {
		name = str(doc, "name")
	}

	_, err := upsertRace(ctx, tx, raceDim{
		apiID:      raceID,
		season:     nullI64(season, seasonOK),
		name:       name,
		raceType:   str(doc, "type"),
		date:       str(doc, "date"),
		circuitKey: circuitKey,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// loadRaceResult upserts one race result keyed on (race, driver). Documents
// missing either id cannot be tied to the schema and are skipped.
func loadRaceResult(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	raceID, raceOK := i64(doc, "race", "id")
	driverID, driverOK := i64(doc, "driver", "id")
	if !raceOK || !driverOK || raceID == 0 || driverID == 0 {
		return false, nil
	}

	raceKey, err := upsertRace(ctx, tx, raceDim{apiID: raceID, name: str(doc, "race", "name"), date: str(doc, "race", "date")})
	if err != nil {
		return false, err
	}
	driverKey, err := upsertDriver(ctx, tx, driverID, str(doc, "driver", "name"), "", "", nil)
	if err != nil {
		return false, err
	}
	teamID, _ := i64(doc, "team", "id")
	teamKey, err := upsertTeamF1(ctx, tx, teamID, str(doc, "team", "name"), "")
	if err != nil {
		return false, err
	}

	position, posOK := i64(doc, "position")
	points, pointsOK := f64(doc, "points")
	laps, lapsOK := i64(doc, "laps")

	_, err = tx.ExecContext(ctx,
		`INSERT INTO fact_race_result (
			race_key, driver_key, team_key, position, points, laps, race_time
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (race_key, driver_key) DO UPDATE SET
			team_key = COALESCE(excluded.team_key, fact_race_result.team_key),
			position = COALESCE(excluded.position, fact_race_result.position),
			points = COALESCE(excluded.points, fact_race_result.points),
			laps = COALESCE(excluded.laps, fact_race_result.laps),
			race_time = COALESCE(excluded.race_time, fact_race_result.race_time)`,
		raceKey, driverKey, nullKey(teamKey),
		nullI64(position, posOK), nullF64(points, pointsOK), nullI64(laps, lapsOK),
		nullStr(str(doc, "time")),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
