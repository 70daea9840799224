// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"strconv"
	"strings"

	"github.com/pdiddy/sportsdw/pkg/types"
)

// Defaults match the reference dataset: Premier League soccer, NBA
// basketball, and the matching 2023 season labels.
const (
	defaultSeason           = 2023
	defaultSoccerLeague     = 39
	defaultBasketballLeague = 12
	defaultBasketballSeason = "2023-2024"
)

// Endpoint is one api-sports fetch: a sport, a path, and query parameters.
type Endpoint struct {
	Sport  string
	Name   string
	Params map[string]string
}

// Collection returns the staging collection for the endpoint
// (e.g. f1 rankings/drivers -> "f1_rankings_drivers").
func (e Endpoint) Collection() string {
	return e.Sport + "_" + strings.ReplaceAll(e.Name, "/", "_")
}

// Plan builds the fetch list for the requested sports in a stable order.
// Unknown sport names are ignored.
func Plan(cfg types.IngestConfig, sports ...string) []Endpoint {
	season := cfg.Season
	if season == 0 {
		season = defaultSeason
	}
	soccerLeague := cfg.SoccerLeague
	if soccerLeague == 0 {
		soccerLeague = defaultSoccerLeague
	}
	basketLeague := cfg.BasketballLeague
	if basketLeague == 0 {
		basketLeague = defaultBasketballLeague
	}
	basketSeason := cfg.BasketballSeason
	if basketSeason == "" {
		basketSeason = defaultBasketballSeason
	}

	yr := strconv.Itoa(season)
	soccerParams := map[string]string{"league": strconv.Itoa(soccerLeague), "season": yr}

	var plan []Endpoint
	for _, sport := range sports {
		switch sport {
		case SportSoccer:
			plan = append(plan,
				Endpoint{Sport: SportSoccer, Name: "leagues"},
				Endpoint{Sport: SportSoccer, Name: "teams", Params: soccerParams},
				Endpoint{Sport: SportSoccer, Name: "players", Params: soccerParams},
				Endpoint{Sport: SportSoccer, Name: "fixtures", Params: soccerParams},
			)
		case SportBasketball:
			plan = append(plan,
				Endpoint{Sport: SportBasketball, Name: "leagues"},
				Endpoint{Sport: SportBasketball, Name: "teams", Params: map[string]string{
					"league": strconv.Itoa(basketLeague), "season": basketSeason,
				}},
				Endpoint{Sport: SportBasketball, Name: "players", Params: map[string]string{
					"team": "1", "season": basketSeason,
				}},
				Endpoint{Sport: SportBasketball, Name: "games", Params: map[string]string{
					"league": strconv.Itoa(basketLeague), "season": basketSeason,
				}},
			)
		case SportFormula1:
			seasonParam := map[string]string{"season": yr}
			plan = append(plan,
				Endpoint{Sport: SportFormula1, Name: "competitions"},
				Endpoint{Sport: SportFormula1, Name: "drivers", Params: seasonParam},
				Endpoint{Sport: SportFormula1, Name: "teams", Params: seasonParam},
				Endpoint{Sport: SportFormula1, Name: "races", Params: seasonParam},
				Endpoint{Sport: SportFormula1, Name: "rankings/drivers", Params: seasonParam},
				Endpoint{Sport: SportFormula1, Name: "rankings/teams", Params: seasonParam},
			)
		}
	}
	return plan
}
