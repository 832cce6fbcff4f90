// Package archetype maps unit metadata onto a fixed set of tactical
// archetypes. Archetypes are the keys of the counter relation.
package archetype

import "fmt"

// Archetype is a tactical category of unit.
type Archetype int

const (
	// Unknown is reported when a unit matched no classification rule.
	Unknown Archetype = iota - 1
	HeavyMeleeInfantry
	LightMeleeInfantry
	Spearman
	HeavyMeleeCavalry
	LightMeleeCavalry
	RangedInfantry
	HeavyRangedInfantry
	LightRangedCavalry
	Siege
	Monk
	Hero

	numArchetypes
)

// Count is the number of real archetypes (Unknown excluded).
const Count = int(numArchetypes)

var names = [Count]string{
	HeavyMeleeInfantry:  "heavy_melee_infantry",
	LightMeleeInfantry:  "light_melee_infantry",
	Spearman:            "spearman",
	HeavyMeleeCavalry:   "heavy_melee_cavalry",
	LightMeleeCavalry:   "light_melee_cavalry",
	RangedInfantry:      "ranged_infantry",
	HeavyRangedInfantry: "heavy_ranged_infantry",
	LightRangedCavalry:  "light_ranged_cavalry",
	Siege:               "siege",
	Monk:                "monk",
	Hero:                "hero",
}

// All lists every archetype in declaration order.
var All = []Archetype{
	HeavyMeleeInfantry,
	LightMeleeInfantry,
	Spearman,
	HeavyMeleeCavalry,
	LightMeleeCavalry,
	RangedInfantry,
	HeavyRangedInfantry,
	LightRangedCavalry,
	Siege,
	Monk,
	Hero,
}

func (a Archetype) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return names[a]
}

// Valid reports whether a is one of the eleven real archetypes.
func (a Archetype) Valid() bool {
	return a >= 0 && a < numArchetypes
}

// Parse returns the archetype with the given snake_case name.
func Parse(s string) (Archetype, error) {
	for i, n := range names {
		if n == s {
			return Archetype(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown archetype %q", s)
}

// Strings renders a list of archetypes by name.
func Strings(as []Archetype) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.String()
	}
	return out
}

// set is a bitmask over archetypes.
type set uint16

func (s set) has(a Archetype) bool { return s&(1<<uint(a)) != 0 }

func (s *set) add(a Archetype) { *s |= 1 << uint(a) }
