// Package testhelpers holds fixtures shared by tests across packages: a
// small static data snapshot and a two-player game summary that resolves
// completely against it.
package testhelpers

import (
	_ "embed"
	"encoding/json"

	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/staticdata"
)

//go:embed testdata/static_data.json
var StaticDataJSON []byte

//go:embed testdata/game_summary.json
var GameSummaryJSON []byte

// StaticData decodes a fresh copy of the static data fixture.
func StaticData() *staticdata.Cache {
	c := &staticdata.Cache{}
	if err := json.Unmarshal(StaticDataJSON, c); err != nil {
		panic(err)
	}
	return c
}

// GameSummary parses a fresh copy of the game summary fixture.
func GameSummary() *gamesummary.Summary {
	s, err := gamesummary.Parse(GameSummaryJSON)
	if err != nil {
		panic(err)
	}
	return s
}
