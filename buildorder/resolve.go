// Package buildorder resolves the raw build order of a game summary against
// the static data, so every produced item has a name, a cost and classes.
package buildorder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/staticdata"
	"github.com/domino14/aoe4analyze/upgrades"
)

// Kind is the resolved category of an item.
type Kind string

const (
	KindUnit     Kind = "unit"
	KindBuilding Kind = "building"
	KindUpgrade  Kind = "upgrade"
	KindAge      Kind = "age"
	KindAnimal   Kind = "animal"
)

// Item is a build order entry resolved to its static data.
type Item struct {
	Entry gamesummary.BuildOrderEntry
	// Seq is the entry's 1-based position in the player's build order. Both
	// halves of a split entry share it. Zero outside ResolveAll.
	Seq  int
	Kind Kind
	ID   string
	Name string
	Cost staticdata.Costs // per item, Total always set

	Tier           upgrades.Tier
	TierMultiplier float64
	// Age is set for age-up markers only.
	Age int

	Classes   []string
	Civs      []string
	Produced  []int
	Destroyed []int
}

// Resolved is one player's build order. Items produced at time 0 are the
// starting assets and appear in StartingAssets rather than Items; an entry
// with both kinds of timestamps appears in both.
type Resolved struct {
	StartingAssets []Item
	Items          []Item
	Unresolved     []gamesummary.BuildOrderEntry
}

var ageNames = map[int]string{
	1: "Dark Age",
	2: "Feudal Age",
	3: "Castle Age",
	4: "Imperial Age",
}

var (
	ageIcon   = regexp.MustCompile(`age_display_persistent_(\d)`)
	imageExt  = regexp.MustCompile(`(?i)\.(png|webp|jpg)$`)
	iconTierN = regexp.MustCompile(`_[2-5]$`)
)

// iconBaseName strips the directory, image extension and tier suffix:
// "icons/races/japanese/units/yumi_ashigaru_2.png" is "yumi_ashigaru".
func iconBaseName(icon string) string {
	if i := strings.LastIndex(icon, "/"); i >= 0 {
		icon = icon[i+1:]
	}
	icon = imageExt.ReplaceAllString(icon, "")
	return iconTierN.ReplaceAllString(icon, "")
}

type iconMatch struct {
	kind    Kind
	id      string
	name    string
	costs   staticdata.Costs
	classes []string
	civs    []string
}

// Resolver looks entries up by pbgid, manual mapping or icon. It is built
// once per static data snapshot and is read-only afterwards.
type Resolver struct {
	manual     map[int]ManualMapping
	units      map[int]staticdata.Unit
	buildings  map[int]staticdata.Building
	techs      map[int]staticdata.Technology
	unitIcons  map[string]iconMatch
	buildIcons map[string]iconMatch
	techIcons  map[string]iconMatch
}

func NewResolver(data *staticdata.Cache) *Resolver {
	r := &Resolver{
		manual:     manualByPbgid,
		units:      map[int]staticdata.Unit{},
		buildings:  map[int]staticdata.Building{},
		techs:      map[int]staticdata.Technology{},
		unitIcons:  map[string]iconMatch{},
		buildIcons: map[string]iconMatch{},
		techIcons:  map[string]iconMatch{},
	}
	addIcon := func(m map[string]iconMatch, icon string, im iconMatch) {
		key := strings.ToLower(iconBaseName(icon))
		if _, ok := m[key]; !ok {
			m[key] = im
		}
	}
	for _, u := range data.Units {
		if u.Pbgid != 0 {
			r.units[u.Pbgid] = u
		}
		addIcon(r.unitIcons, u.Icon, iconMatch{KindUnit, u.ID, u.Name, u.Costs, u.Classes, u.Civs})
	}
	for _, b := range data.Buildings {
		if b.Pbgid != 0 {
			r.buildings[b.Pbgid] = b
		}
		addIcon(r.buildIcons, b.Icon, iconMatch{KindBuilding, b.ID, b.Name, b.Costs, b.Classes, b.Civs})
	}
	for _, t := range data.Technologies {
		if t.Pbgid != 0 {
			r.techs[t.Pbgid] = t
		}
		addIcon(r.techIcons, t.Icon, iconMatch{KindUpgrade, t.ID, t.Name, t.Costs, t.Classes, t.Civs})
	}
	return r
}

func (r *Resolver) matchIcon(icon string) (iconMatch, bool) {
	key := strings.ToLower(iconBaseName(icon))
	for _, m := range []map[string]iconMatch{r.unitIcons, r.buildIcons, r.techIcons} {
		if im, ok := m[key]; ok {
			return im, true
		}
	}
	return iconMatch{}, false
}

func concat(a, b []int) []int {
	return append(append(make([]int, 0, len(a)+len(b)), a...), b...)
}

// Resolve resolves a single entry. Age and animal entries are synthesized,
// then manual mappings are consulted, then the pbgid index for the entry's
// type, and finally an icon match across units, buildings and technologies.
func (r *Resolver) Resolve(e gamesummary.BuildOrderEntry) (Item, bool) {
	switch e.Type {
	case gamesummary.EntryAge:
		age := 1
		if m := ageIcon.FindStringSubmatch(e.Icon); m != nil {
			age, _ = strconv.Atoi(m[1])
		}
		name, ok := ageNames[age]
		if !ok {
			name = fmt.Sprintf("Age %d", age)
		}
		return Item{
			Entry: e, Kind: KindAge, ID: fmt.Sprintf("age-%d", age), Name: name,
			Tier: upgrades.Base, TierMultiplier: 1, Age: age,
			Classes: []string{"age"}, Produced: e.Finished, Destroyed: []int{},
		}, true
	case gamesummary.EntryAnimal:
		name := iconBaseName(e.Icon)
		if name != "" {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		return Item{
			Entry: e, Kind: KindAnimal, ID: e.ID, Name: name,
			Tier: upgrades.Base, TierMultiplier: 1,
			Classes: []string{"animal"}, Produced: e.Finished, Destroyed: e.Destroyed,
		}, true
	}

	tier := upgrades.TierFromIcon(e.Icon)
	item := Item{Entry: e, Tier: tier, TierMultiplier: tier.Multiplier(), Destroyed: e.Destroyed}

	if m, ok := r.manual[e.Pbgid]; ok {
		item.Kind = KindUnit
		if k := Kind(strings.ToLower(string(e.Type))); k == KindBuilding || k == KindUpgrade {
			item.Kind = k
		}
		item.ID = m.ID
		if item.ID == "" {
			item.ID = e.ID
		}
		item.Name = m.Name
		item.Cost = m.Cost.Normalized()
		item.Classes = m.Classes
		item.Civs = m.Civs
		item.Produced = concat(e.Finished, e.Constructed)
		return item, true
	}

	switch e.Type {
	case gamesummary.EntryUnit:
		if u, ok := r.units[e.Pbgid]; ok {
			item.Kind, item.ID, item.Name, item.Cost = KindUnit, u.ID, u.Name, u.Costs.Normalized()
			item.Classes, item.Civs, item.Produced = u.Classes, u.Civs, e.Finished
			return item, true
		}
	case gamesummary.EntryBuilding:
		if b, ok := r.buildings[e.Pbgid]; ok {
			item.Kind, item.ID, item.Name, item.Cost = KindBuilding, b.ID, b.Name, b.Costs.Normalized()
			item.Classes, item.Civs, item.Produced = b.Classes, b.Civs, e.Constructed
			return item, true
		}
	case gamesummary.EntryUpgrade:
		if t, ok := r.techs[e.Pbgid]; ok {
			item.Kind, item.ID, item.Name, item.Cost = KindUpgrade, t.ID, t.Name, t.Costs.Normalized()
			item.Classes, item.Civs, item.Produced = t.Classes, t.Civs, e.Finished
			item.Destroyed = []int{}
			return item, true
		}
	}

	if m, ok := r.matchIcon(e.Icon); ok {
		log.Debug().Str("icon", e.Icon).Int("pbgid", e.Pbgid).Str("id", m.id).Msg("resolved-by-icon")
		item.Kind, item.ID, item.Name, item.Cost = m.kind, m.id, m.name, m.costs.Normalized()
		item.Classes, item.Civs = m.classes, m.civs
		item.Produced = e.Finished
		if m.kind == KindBuilding {
			item.Produced = e.Constructed
		}
		return item, true
	}
	return Item{}, false
}

// ResolveAll resolves a player's whole build order.
func (r *Resolver) ResolveAll(p *gamesummary.Player) *Resolved {
	res := &Resolved{}
	for i, e := range p.BuildOrder {
		item, ok := r.Resolve(e)
		if !ok {
			log.Debug().Str("player", p.Name).Str("type", string(e.Type)).Str("icon", e.Icon).
				Int("pbgid", e.Pbgid).Msg("unresolved-build-item")
			res.Unresolved = append(res.Unresolved, e)
			continue
		}
		item.Seq = i + 1
		starting := lo.Filter(item.Produced, func(ts int, _ int) bool { return ts == 0 })
		later := lo.Filter(item.Produced, func(ts int, _ int) bool { return ts > 0 })
		if len(starting) > 0 {
			s := item
			s.Produced = starting
			res.StartingAssets = append(res.StartingAssets, s)
		}
		if len(later) > 0 {
			item.Produced = later
			res.Items = append(res.Items, item)
		}
	}
	return res
}

// Validate returns an *UnresolvedError if any entry could not be resolved.
func (res *Resolved) Validate() error {
	if len(res.Unresolved) == 0 {
		return nil
	}
	return &UnresolvedError{Entries: res.Unresolved}
}
