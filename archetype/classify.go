package archetype

import (
	"regexp"
	"strings"
)

// Descriptor is the unit metadata the classifier reads. It is never mutated.
type Descriptor struct {
	Name           string
	BaseID         string
	Classes        []string
	DisplayClasses []string
}

var (
	separators = strings.NewReplacer("_", " ", "-", " ")
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
)

// tokens is the normalized text of a descriptor: one lowercase entry per
// source string, with separators turned into spaces and anything else that
// is not alphanumeric removed.
type tokens []string

func normalize(values []string) tokens {
	t := make(tokens, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		v = separators.Replace(strings.ToLower(v))
		t = append(t, strings.TrimSpace(nonAlnum.ReplaceAllString(v, "")))
	}
	return t
}

// has reports whether any entry contains keyword.
func (t tokens) has(keyword string) bool {
	for _, v := range t {
		if strings.Contains(v, keyword) {
			return true
		}
	}
	return false
}

func (t tokens) hasAny(keywords ...string) bool {
	for _, k := range keywords {
		if t.has(k) {
			return true
		}
	}
	return false
}

// hasAll reports whether a single entry contains every keyword.
func (t tokens) hasAll(keywords ...string) bool {
	for _, v := range t {
		all := true
		for _, k := range keywords {
			if !strings.Contains(v, k) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// A rule assigns its archetype when match holds. Rules see the archetypes
// assigned by earlier rules but never modify them.
type rule struct {
	archetype Archetype
	match     func(t tokens, assigned set) bool
}

// rules run in this order. More specific archetypes come first so that the
// broad ranged and light infantry catch-alls can defer to them.
var rules = []rule{
	{Hero, func(t tokens, _ set) bool {
		return t.hasAny("hero", "jeanne", "khan", "daimyo")
	}},
	{Monk, func(t tokens, _ set) bool {
		return t.hasAny("monk", "imam", "prelate", "scholar", "religious")
	}},
	{Siege, func(t tokens, _ set) bool {
		return t.hasAny("siege", "ram", "bombard", "mangonel", "trebuchet", "springald")
	}},
	{Spearman, func(t tokens, _ set) bool {
		return t.hasAny("spear", "pike")
	}},
	{HeavyRangedInfantry, func(t tokens, _ set) bool {
		return t.hasAny("crossbow", "arbaletrier", "handcannon") ||
			t.hasAll("heavy", "ranged", "infantry")
	}},
	{LightRangedCavalry, func(t tokens, _ set) bool {
		return t.hasAll("ranged", "cavalry") || t.hasAny("horse archer", "mangudai")
	}},
	{LightMeleeCavalry, func(t tokens, _ set) bool {
		return t.hasAll("light", "melee", "cavalry") || t.hasAny("horseman", "sofa")
	}},
	{HeavyMeleeCavalry, func(t tokens, _ set) bool {
		return t.hasAll("heavy", "melee", "cavalry") || t.hasAny("knight", "lancer")
	}},
	{HeavyMeleeInfantry, func(t tokens, _ set) bool {
		return t.hasAll("heavy", "melee", "infantry") || t.hasAny("man at arms", "samurai")
	}},
	{RangedInfantry, func(t tokens, assigned set) bool {
		if assigned.has(HeavyRangedInfantry) {
			return false
		}
		return t.has("archer") || (t.has("ranged") && t.has("infantry"))
	}},
	{LightMeleeInfantry, func(t tokens, assigned set) bool {
		if assigned.has(Spearman) {
			return false
		}
		return t.hasAll("light", "melee", "infantry") || t.hasAny("musofadi", "warrior")
	}},
}

// Classify returns the archetypes of a unit in rule order, without
// duplicates. A unit that matches nothing gets an empty result, which the
// counter evaluator treats as neutral.
func Classify(d Descriptor) []Archetype {
	values := make([]string, 0, len(d.Classes)+len(d.DisplayClasses)+2)
	values = append(values, d.Classes...)
	values = append(values, d.DisplayClasses...)
	values = append(values, d.Name, d.BaseID)
	t := normalize(values)

	var assigned set
	out := []Archetype{}
	for _, r := range rules {
		if assigned.has(r.archetype) || !r.match(t, assigned) {
			continue
		}
		assigned.add(r.archetype)
		out = append(out, r.archetype)
	}
	return out
}
