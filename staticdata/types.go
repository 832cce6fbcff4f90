// Package staticdata holds the aoe4world reference data (units, buildings
// and technologies) and keeps a local JSON cache of it.
package staticdata

import (
	"encoding/json"
	"time"

	"github.com/domino14/aoe4analyze/archetype"
)

// Costs are resource costs. A zero Total means the source omitted it.
type Costs struct {
	Food  float64 `json:"food,omitempty"`
	Wood  float64 `json:"wood,omitempty"`
	Gold  float64 `json:"gold,omitempty"`
	Stone float64 `json:"stone,omitempty"`
	Total float64 `json:"total,omitempty"`
}

// Sum is food + wood + gold + stone.
func (c Costs) Sum() float64 {
	return c.Food + c.Wood + c.Gold + c.Stone
}

// Normalized fills in Total from the individual resources when missing.
func (c Costs) Normalized() Costs {
	if c.Total == 0 {
		c.Total = c.Sum()
	}
	return c
}

type Unit struct {
	ID             string   `json:"id"`
	BaseID         string   `json:"baseId"`
	Name           string   `json:"name"`
	Pbgid          int      `json:"pbgid,omitempty"`
	Civs           []string `json:"civs"`
	Costs          Costs    `json:"costs"`
	Classes        []string `json:"classes"`
	DisplayClasses []string `json:"displayClasses"`
	Age            int      `json:"age"`
	Icon           string   `json:"icon"`
}

// Descriptor is the unit as seen by the archetype classifier.
func (u Unit) Descriptor() archetype.Descriptor {
	return archetype.Descriptor{
		Name:           u.Name,
		BaseID:         u.BaseID,
		Classes:        u.Classes,
		DisplayClasses: u.DisplayClasses,
	}
}

type Building struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Pbgid   int      `json:"pbgid,omitempty"`
	Civs    []string `json:"civs"`
	Costs   Costs    `json:"costs"`
	Classes []string `json:"classes,omitempty"`
	Age     int      `json:"age"`
	Icon    string   `json:"icon"`
}

type Technology struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Pbgid   int               `json:"pbgid,omitempty"`
	Civs    []string          `json:"civs"`
	Costs   Costs             `json:"costs"`
	Classes []string          `json:"classes,omitempty"`
	Age     int               `json:"age"`
	Icon    string            `json:"icon"`
	Effects []json.RawMessage `json:"effects,omitempty"`
}

// List decodes either a bare JSON array or an object wrapping the array in
// a "data" field, which is how aoe4world serves its all.json files.
// Anything else decodes to an empty list.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	var arr []T
	if err := json.Unmarshal(b, &arr); err == nil {
		if arr == nil {
			arr = []T{}
		}
		*l = arr
		return nil
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err == nil && envelope.Data != nil {
		*l = envelope.Data
		return nil
	}
	*l = List[T]{}
	return nil
}

// timeLayout matches what browsers produce for Date.toISOString.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Cache is the on-disk snapshot of all reference data.
type Cache struct {
	Units        List[Unit]       `json:"units"`
	Buildings    List[Building]   `json:"buildings"`
	Technologies List[Technology] `json:"technologies"`
	FetchedAt    string           `json:"fetchedAt"`
}

// FetchedTime parses FetchedAt.
func (c *Cache) FetchedTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.FetchedAt)
}

// Age is how long ago the data was fetched.
func (c *Cache) Age(now time.Time) (time.Duration, error) {
	t, err := c.FetchedTime()
	if err != nil {
		return 0, err
	}
	return now.Sub(t), nil
}

// UnitsByID indexes units by id for the count-based analyzer.
func UnitsByID(units []Unit) map[string]archetype.Descriptor {
	m := make(map[string]archetype.Descriptor, len(units))
	for _, u := range units {
		m[u.ID] = u.Descriptor()
	}
	return m
}
