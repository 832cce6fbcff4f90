// Package gamesummary parses aoe4world game summaries. Documents are
// validated against an embedded JSON schema before decoding, so a summary
// that parses has every field the analysis reads.
package gamesummary

import (
	"encoding/json"
)

type Summary struct {
	GameID      int64     `json:"gameId"`
	WinReason   string    `json:"winReason"`
	MapName     string    `json:"mapName"`
	MapBiome    string    `json:"mapBiome"`
	Leaderboard string    `json:"leaderboard"`
	Duration    int       `json:"duration"`
	StartedAt   int64     `json:"startedAt"`
	FinishedAt  int64     `json:"finishedAt"`
	Players     []*Player `json:"players"`
}

type Player struct {
	ProfileID    int64                `json:"profileId"`
	Name         string               `json:"name"`
	Civilization string               `json:"civilization"`
	Team         int                  `json:"team"`
	APM          float64              `json:"apm"`
	Result       string               `json:"result"`
	Stats        Stats                `json:"_stats"`
	Actions      map[string][]float64 `json:"actions,omitempty"`
	Scores       Scores               `json:"scores"`

	TotalResourcesGathered ResourceTotals `json:"totalResourcesGathered"`
	TotalResourcesSpent    ResourceTotals `json:"totalResourcesSpent"`
	Resources              TimeSeries     `json:"resources"`

	BuildOrder []BuildOrderEntry `json:"buildOrder"`
}

// Won reports whether the player won the game.
func (p *Player) Won() bool {
	return p.Result == "win"
}

type Stats struct {
	EnemyKills    int `json:"ekills"`
	EnemyDeaths   int `json:"edeaths"`
	SquadsProd    int `json:"sqprod"`
	SquadsLost    int `json:"sqlost"`
	BuildingsProd int `json:"bprod"`
	Upgrades      int `json:"upg"`
	TotalCommands int `json:"totalcmds"`
}

type Scores struct {
	Total      float64 `json:"total"`
	Military   float64 `json:"military"`
	Economy    float64 `json:"economy"`
	Technology float64 `json:"technology"`
	Society    float64 `json:"society"`
}

type ResourceTotals struct {
	Food  float64 `json:"food"`
	Gold  float64 `json:"gold"`
	Stone float64 `json:"stone"`
	Wood  float64 `json:"wood"`
	Total float64 `json:"total"`
}

func (r ResourceTotals) Add(o ResourceTotals) ResourceTotals {
	return ResourceTotals{
		Food:  r.Food + o.Food,
		Gold:  r.Gold + o.Gold,
		Stone: r.Stone + o.Stone,
		Wood:  r.Wood + o.Wood,
		Total: r.Total + o.Total,
	}
}

func (r ResourceTotals) Sub(o ResourceTotals) ResourceTotals {
	return r.Add(o.Scale(-1))
}

func (r ResourceTotals) Scale(n float64) ResourceTotals {
	return ResourceTotals{
		Food:  r.Food * n,
		Gold:  r.Gold * n,
		Stone: r.Stone * n,
		Wood:  r.Wood * n,
		Total: r.Total * n,
	}
}

// TimeSeries holds per-sample resource curves. All series share Timestamps.
type TimeSeries struct {
	Timestamps  []float64 `json:"timestamps"`
	Food        []float64 `json:"food"`
	Gold        []float64 `json:"gold"`
	Stone       []float64 `json:"stone"`
	Wood        []float64 `json:"wood"`
	FoodPerMin  []float64 `json:"foodPerMin"`
	GoldPerMin  []float64 `json:"goldPerMin"`
	StonePerMin []float64 `json:"stonePerMin"`
	WoodPerMin  []float64 `json:"woodPerMin"`
	Total       []float64 `json:"total"`
	Military    []float64 `json:"military"`
	Economy     []float64 `json:"economy"`
	Technology  []float64 `json:"technology"`
	Society     []float64 `json:"society"`
}

// EntryType is the kind of a build order entry.
type EntryType string

const (
	EntryUnit     EntryType = "Unit"
	EntryBuilding EntryType = "Building"
	EntryUpgrade  EntryType = "Upgrade"
	EntryAge      EntryType = "Age"
	EntryAnimal   EntryType = "Animal"
	EntryUnknown  EntryType = "Unknown"
)

// UnmarshalJSON maps any unrecognised type to EntryUnknown.
func (t *EntryType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch e := EntryType(s); e {
	case EntryUnit, EntryBuilding, EntryUpgrade, EntryAge, EntryAnimal:
		*t = e
	default:
		*t = EntryUnknown
	}
	return nil
}

// BuildOrderEntry is one produced item. Timestamps are game seconds; units
// and upgrades report Finished, buildings report Constructed.
type BuildOrderEntry struct {
	ID          string    `json:"id"`
	Icon        string    `json:"icon"`
	Pbgid       int       `json:"pbgid"`
	Type        EntryType `json:"type"`
	Finished    []int     `json:"finished"`
	Constructed []int     `json:"constructed"`
	Destroyed   []int     `json:"destroyed"`
}
