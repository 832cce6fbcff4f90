// Package counters holds the directed, weighted counter relation between
// archetypes and the evaluator that resolves a pair of multi-archetype units
// to a single effectiveness multiplier.
package counters

import (
	"fmt"

	"github.com/domino14/aoe4analyze/archetype"
	"github.com/domino14/aoe4analyze/stats"
)

// Pair is one directed counter: Attacker deals Value times its worth
// against Defender.
type Pair struct {
	Attacker archetype.Archetype
	Defender archetype.Archetype
	Value    float64
}

// BasePairs are the modeled counters. Each one also implies the reverse
// pair at the rounded reciprocal.
var BasePairs = []Pair{
	// Spearmen vs cavalry
	{archetype.Spearman, archetype.HeavyMeleeCavalry, 1.5},
	{archetype.Spearman, archetype.LightMeleeCavalry, 1.4},
	{archetype.Spearman, archetype.LightRangedCavalry, 1.4},
	// Crossbows and gunpowder vs armor
	{archetype.HeavyRangedInfantry, archetype.HeavyMeleeInfantry, 1.5},
	{archetype.HeavyRangedInfantry, archetype.HeavyMeleeCavalry, 1.4},
	{archetype.HeavyRangedInfantry, archetype.LightMeleeInfantry, 0.9},
	{archetype.HeavyRangedInfantry, archetype.LightMeleeCavalry, 0.7},
	{archetype.HeavyRangedInfantry, archetype.Siege, 1.1},
	{archetype.HeavyRangedInfantry, archetype.Monk, 1.2},
	{archetype.HeavyMeleeInfantry, archetype.LightMeleeInfantry, 1.3},
	// Heavy cavalry dives ranged and light infantry
	{archetype.HeavyMeleeCavalry, archetype.RangedInfantry, 1.4},
	{archetype.HeavyMeleeCavalry, archetype.LightMeleeInfantry, 1.3},
	{archetype.HeavyMeleeCavalry, archetype.LightMeleeCavalry, 1.1},
	{archetype.HeavyMeleeCavalry, archetype.Siege, 1.5},
	{archetype.HeavyMeleeCavalry, archetype.Monk, 1.3},
	// Light cavalry cleanup
	{archetype.LightMeleeCavalry, archetype.Siege, 1.5},
	{archetype.LightRangedCavalry, archetype.Siege, 1.5},
	{archetype.LightMeleeCavalry, archetype.Monk, 1.5},
	{archetype.LightRangedCavalry, archetype.Monk, 1.5},
	// Archers vs light infantry
	{archetype.RangedInfantry, archetype.LightMeleeInfantry, 1.25},
	{archetype.RangedInfantry, archetype.Spearman, 1.25},
	// Men-at-arms vs archers
	{archetype.HeavyMeleeInfantry, archetype.RangedInfantry, 1.25},
}

// Relation maps (attacker, defender) to a multiplier. A zero cell means the
// pair is not modeled. A Relation is read-only once built.
type Relation struct {
	table [archetype.Count][archetype.Count]float64
}

// New builds a relation from base pairs, inserting every reciprocal. Any key
// set twice, whether directly or through a reciprocal, is an error.
func New(base []Pair) (*Relation, error) {
	r := &Relation{}
	for _, p := range base {
		if p.Value <= 0 {
			return nil, fmt.Errorf("counter %s->%s: value must be positive, got %v",
				p.Attacker, p.Defender, p.Value)
		}
		if err := r.set(p.Attacker, p.Defender, p.Value); err != nil {
			return nil, err
		}
		if err := r.set(p.Defender, p.Attacker, Reciprocal(p.Value)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is New for tables known to be valid.
func MustNew(base []Pair) *Relation {
	r, err := New(base)
	if err != nil {
		panic(err)
	}
	return r
}

// Reciprocal is the multiplier inserted for the reverse of a counter.
func Reciprocal(v float64) float64 {
	return stats.Round2(1 / v)
}

func (r *Relation) set(a, d archetype.Archetype, v float64) error {
	if !a.Valid() || !d.Valid() {
		return fmt.Errorf("counter %s->%s: invalid archetype", a, d)
	}
	if r.table[a][d] != 0 {
		return fmt.Errorf("counter %s->%s already set to %v", a, d, r.table[a][d])
	}
	r.table[a][d] = v
	return nil
}

// Lookup returns the multiplier for attacker against defender. ok is false
// when the pair is not modeled.
func (r *Relation) Lookup(attacker, defender archetype.Archetype) (v float64, ok bool) {
	if !attacker.Valid() || !defender.Valid() {
		return 0, false
	}
	v = r.table[attacker][defender]
	return v, v != 0
}

// Pairs lists every modeled pair, attacker-major.
func (r *Relation) Pairs() []Pair {
	var out []Pair
	for _, a := range archetype.All {
		for _, d := range archetype.All {
			if v, ok := r.Lookup(a, d); ok {
				out = append(out, Pair{a, d, v})
			}
		}
	}
	return out
}

var defaultRelation = MustNew(BasePairs)

// Default is the process-wide relation built from BasePairs.
func Default() *Relation {
	return defaultRelation
}
