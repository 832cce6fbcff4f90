package gamesummary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/aoe4analyze/aoe4world"
	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/testhelpers"
)

func TestParseFixture(t *testing.T) {
	s, err := gamesummary.Parse(testhelpers.GameSummaryJSON)
	require.NoError(t, err)

	assert.EqualValues(t, 123456789, s.GameID)
	assert.Equal(t, "Dry Arabia", s.MapName)
	require.Len(t, s.Players, 2)

	alice := s.Players[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.True(t, alice.Won())
	assert.Equal(t, 92.5, alice.APM)
	assert.Equal(t, 900, alice.Stats.TotalCommands)
	assert.Equal(t, 3300.0, alice.TotalResourcesSpent.Total)
	assert.Equal(t, []float64{0, 60}, alice.Resources.Timestamps)
	assert.Equal(t, []float64{420}, alice.Actions["upgradeWeaponsDamageI"])
	require.Len(t, alice.BuildOrder, 9)
	assert.Equal(t, gamesummary.EntryUnit, alice.BuildOrder[0].Type)
	assert.Equal(t, gamesummary.EntryAnimal, alice.BuildOrder[1].Type)
	assert.Equal(t, []int{200}, alice.BuildOrder[2].Constructed)

	bob := s.Players[1]
	assert.False(t, bob.Won())
	assert.Nil(t, bob.Actions)
}

// mutate decodes the fixture, applies f and re-encodes it.
func mutate(t *testing.T, f func(doc map[string]any)) []byte {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(testhelpers.GameSummaryJSON, &doc))
	f(doc)
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return b
}

func player(doc map[string]any, i int) map[string]any {
	return doc["players"].([]any)[i].(map[string]any)
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		name  string
		doc   []byte
		field string
	}{
		{
			name: "no players",
			doc: mutate(t, func(doc map[string]any) {
				doc["players"] = []any{}
			}),
			field: "players",
		},
		{
			name: "bad result",
			doc: mutate(t, func(doc map[string]any) {
				player(doc, 1)["result"] = "draw"
			}),
			field: "players[1].result",
		},
		{
			name: "apm not a number",
			doc: mutate(t, func(doc map[string]any) {
				player(doc, 0)["apm"] = "fast"
			}),
			field: "players[0].apm",
		},
		{
			name: "missing map name",
			doc: mutate(t, func(doc map[string]any) {
				delete(doc, "mapName")
			}),
			field: "mapName",
		},
		{
			name: "build order timestamps",
			doc: mutate(t, func(doc map[string]any) {
				entry := player(doc, 0)["buildOrder"].([]any)[0].(map[string]any)
				entry["finished"] = "soon"
			}),
			field: "players[0].buildOrder[0].finished",
		},
		{
			name:  "not an object",
			doc:   []byte(`[1, 2]`),
			field: "(root)",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gamesummary.Parse(tc.doc)
			require.ErrorIs(t, err, gamesummary.ErrInvalidSummary)
			assert.ErrorContains(t, err, tc.field)
		})
	}
}

func TestParseMapsUnknownEntryTypes(t *testing.T) {
	doc := mutate(t, func(doc map[string]any) {
		entry := player(doc, 0)["buildOrder"].([]any)[0].(map[string]any)
		entry["type"] = "Wonder"
	})
	s, err := gamesummary.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, gamesummary.EntryUnknown, s.Players[0].BuildOrder[0].Type)
}

func TestParseBuildOrderOptional(t *testing.T) {
	doc := mutate(t, func(doc map[string]any) {
		delete(player(doc, 1), "buildOrder")
	})
	s, err := gamesummary.Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, s.Players[1].BuildOrder)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, testhelpers.GameSummaryJSON, 0o644))
	s, err := gamesummary.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Players, 2)

	_, err = gamesummary.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/players/111-alice/games/123456789/summary" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "true", r.URL.Query().Get("camelize"))
		assert.Equal(t, "s3cr3t", r.URL.Query().Get("sig"))
		w.Write(testhelpers.GameSummaryJSON)
	}))
	defer srv.Close()

	f := &gamesummary.Fetcher{
		Client:      &aoe4world.Client{Attempts: 1, Delay: time.Millisecond},
		URLTemplate: srv.URL + "/players/%s/games/%d/summary",
	}
	s, err := f.Fetch(context.Background(), "111-alice", 123456789, "s3cr3t")
	require.NoError(t, err)
	assert.Equal(t, "Bob", s.Players[1].Name)

	_, err = f.Fetch(context.Background(), "222-bob", 1, "")
	assert.ErrorContains(t, err, srv.URL+"/players/222-bob/games/1/summary")
	assert.ErrorContains(t, err, "404")
}
