// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"context"
	"io"
)

// migrateSoccer loads fixture documents into the soccer star schema. Fixture
// collections are those staged under soccer_ whose name mentions fixtures or
// matches.
func (s *Store) migrateSoccer(ctx context.Context, src DocumentSource, w io.Writer) (Summary, error) {
	colls, err := collectionsMatching(ctx, src, "soccer_", "fixtures", "matches")
	if err != nil {
		return Summary{}, err
	}
	return s.migrateDocs(ctx, src, colls, w, loadMatch)
}

// loadMatch upserts one fixture document: league, date, venue, referee, and
// both teams first, then the fact row keyed on the API fixture id. Documents
// without a fixture id are skipped.
func loadMatch(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	apiMatchID, ok := i64(doc, "fixture", "id")
	if !ok {
		apiMatchID, ok = i64(doc, "id")
	}
	if !ok || apiMatchID == 0 {
		return false, nil
	}

	season, seasonOK := i64(doc, "league", "season")
	leagueID, _ := i64(doc, "league", "id")
	leagueKey, err := upsertLeague(ctx, tx, leagueID,
		str(doc, "league", "name"), str(doc, "league", "country"),
		nullI64(season, seasonOK))
	if err != nil {
		return false, err
	}

	var timeKey int64
	if day, ok := parseDate(str(doc, "fixture", "date")); ok {
		if timeKey, err = upsertTime(ctx, tx, day); err != nil {
			return false, err
		}
	}

	var venueKey int64
	if venueID, ok := i64(doc, "fixture", "venue", "id"); ok && venueID != 0 {
		capacity, capOK := i64(doc, "fixture", "venue", "capacity")
		venueKey, err = upsertVenue(ctx, tx, venueID,
			str(doc, "fixture", "venue", "name"), str(doc, "fixture", "venue", "city"),
			nullI64(capacity, capOK))
		if err != nil {
			return false, err
		}
	}

	// The fixtures endpoint carries the referee as a bare name string.
	refereeName := str(doc, "fixture", "referee")
	if refereeName == "" {
		refereeName = str(doc, "fixture", "referee", "name")
	}
	refereeKey, err := upsertReferee(ctx, tx, refereeName, "")
	if err != nil {
		return false, err
	}

	homeID, _ := i64(doc, "teams", "home", "id")
	homeKey, err := upsertTeam(ctx, tx, teamDim{apiID: homeID, name: str(doc, "teams", "home", "name")})
	if err != nil {
		return false, err
	}
	awayID, _ := i64(doc, "teams", "away", "id")
	awayKey, err := upsertTeam(ctx, tx, teamDim{apiID: awayID, name: str(doc, "teams", "away", "name")})
	if err != nil {
		return false, err
	}

	homeGoals, homeOK := i64(doc, "goals", "home")
	awayGoals, awayOK := i64(doc, "goals", "away")
	attendance, attOK := i64(doc, "fixture", "attendance")
	possessionHome, possessionAway := possession(doc)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO fact_match (
			api_match_id, league_key, season, time_key, venue_key, referee_key,
			home_team_key, away_team_key, home_goals, away_goals,
			attendance, possession_home, possession_away
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (api_match_id) DO UPDATE SET
			home_goals = excluded.home_goals,
			away_goals = excluded.away_goals,
			attendance = COALESCE(excluded.attendance, fact_match.attendance),
			possession_home = COALESCE(excluded.possession_home, fact_match.possession_home),
			possession_away = COALESCE(excluded.possession_away, fact_match.possession_away)`,
		apiMatchID, nullKey(leagueKey), nullI64(season, seasonOK), nullKey(timeKey),
		nullKey(venueKey), nullKey(refereeKey), nullKey(homeKey), nullKey(awayKey),
		nullI64(homeGoals, homeOK), nullI64(awayGoals, awayOK),
		nullI64(attendance, attOK), possessionHome, possessionAway,
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// possession pulls ball-possession percentages out of a statistics list when
// the document carries one. Entries look like {type, home, away} with values
// either bare or nested under value.
func possession(doc map[string]any) (home, away any) {
	for _, item := range list(doc, "statistics") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := str(entry, "type")
		if t != "Ball Possession" && t != "Possession" {
			continue
		}
		if v, ok := f64(entry, "home", "value"); ok {
			home = v
		} else if v, ok := f64(entry, "home"); ok {
			home = v
		}
		if v, ok := f64(entry, "away", "value"); ok {
			away = v
		} else if v, ok := f64(entry, "away"); ok {
			away = v
		}
		return home, away
	}
	return nil, nil
}
