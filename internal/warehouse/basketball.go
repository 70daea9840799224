// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package warehouse

import (
	"context"
	"io"
)

// migrateBasketball loads the basketball staging collections: team and
// player documents feed their dimensions directly, game documents feed the
// fact table and any dimensions they reference.
func (s *Store) migrateBasketball(ctx context.Context, src DocumentSource, w io.Writer) (Summary, error) {
	var total Summary

	teamColls, err := collectionsMatching(ctx, src, "basketball_", "teams")
	if err != nil {
		return total, err
	}
	sum, err := s.migrateDocs(ctx, src, teamColls, w, loadBasketballTeam)
	if err != nil {
		return total, err
	}
	total.add(sum)

	playerColls, err := collectionsMatching(ctx, src, "basketball_", "players")
	if err != nil {
		return total, err
	}
	sum, err = s.migrateDocs(ctx, src, playerColls, w, loadBasketballPlayer)
	if err != nil {
		return total, err
	}
	total.add(sum)

	gameColls, err := collectionsMatching(ctx, src, "basketball_", "games")
	if err != nil {
		return total, err
	}
	sum, err = s.migrateDocs(ctx, src, gameColls, w, loadBasketballGame)
	if err != nil {
		return total, err
	}
	total.add(sum)

	return total, nil
}

func loadBasketballTeam(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	teamID, ok := i64(doc, "id")
	if !ok || teamID == 0 {
		return false, nil
	}
	_, err := upsertTeamBasketball(ctx, tx, teamID, str(doc, "name"), str(doc, "city"))
	if err != nil {
		return false, err
	}
	return true, nil
}

func loadBasketballPlayer(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	playerID, ok := i64(doc, "id")
	if !ok || playerID == 0 {
		return false, nil
	}
	_, err := upsertPlayerBasketball(ctx, tx, playerID,
		str(doc, "name"), str(doc, "position"), str(doc, "country"), str(doc, "birth", "date"))
	if err != nil {
		return false, err
	}
	return true, nil
}

// loadBasketballGame upserts one game keyed on the API game id. Documents
// without an id are skipped rather than inserted as unidentifiable facts.
func loadBasketballGame(ctx context.Context, tx dbtx, doc map[string]any) (bool, error) {
	gameID, ok := i64(doc, "id")
	if !ok {
		gameID, ok = i64(doc, "game", "id")
	}
	if !ok || gameID == 0 {
		return false, nil
	}

	leagueID, _ := i64(doc, "league", "id")
	leagueKey, err := upsertLeagueBasketball(ctx, tx, leagueID,
		str(doc, "league", "name"), str(doc, "country", "name"))
	if err != nil {
		return false, err
	}

	var dateKey int64
	if day, ok := parseDate(str(doc, "date")); ok {
		if dateKey, err = upsertDate(ctx, tx, day); err != nil {
			return false, err
		}
	}

	homeID, _ := i64(doc, "teams", "home", "id")
	homeKey, err := upsertTeamBasketball(ctx, tx, homeID, str(doc, "teams", "home", "name"), "")
	if err != nil {
		return false, err
	}
	awayID, _ := i64(doc, "teams", "away", "id")
	awayKey, err := upsertTeamBasketball(ctx, tx, awayID, str(doc, "teams", "away", "name"), "")
	if err != nil {
		return false, err
	}

	homeScore, homeOK := i64(doc, "scores", "home", "total")
	awayScore, awayOK := i64(doc, "scores", "away", "total")

	_, err = tx.ExecContext(ctx,
		`INSERT INTO fact_game_basketball (
			api_game_id, date_key, league_key, home_team_key, away_team_key,
			home_score, away_score, status
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (api_game_id) DO UPDATE SET
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			status = COALESCE(excluded.status, fact_game_basketball.status)`,
		gameID, nullKey(dateKey), nullKey(leagueKey), nullKey(homeKey), nullKey(awayKey),
		nullI64(homeScore, homeOK), nullI64(awayScore, awayOK),
		nullStr(str(doc, "status", "long")),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}
