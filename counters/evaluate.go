package counters

import "github.com/domino14/aoe4analyze/archetype"

// Neutral is the multiplier used when no modeled pair applies.
const Neutral = 1.0

// Evaluation is the resolved effectiveness of one unit against another.
// Attacker and Defender are the archetypes of the chosen pair, or
// archetype.Unknown when nothing was chosen.
type Evaluation struct {
	Value    float64
	Attacker archetype.Archetype
	Defender archetype.Archetype
}

// Chosen reports whether a modeled pair determined the value.
func (e Evaluation) Chosen() bool {
	return e.Attacker != archetype.Unknown
}

// Evaluate resolves every attacker/defender archetype combination to one
// multiplier. Starting from neutral, a candidate replaces the best so far if
// it is strictly greater, or if the best is still neutral and the candidate
// is below neutral. The largest advantage always wins. Without any
// advantage the first disadvantage found takes the slot and can then only be
// displaced by a milder one, so the worst disadvantage is never reported
// when a milder one exists.
func (r *Relation) Evaluate(attacker, defender []archetype.Archetype) Evaluation {
	best := Evaluation{
		Value:    Neutral,
		Attacker: archetype.Unknown,
		Defender: archetype.Unknown,
	}
	for _, a := range attacker {
		for _, d := range defender {
			v, ok := r.Lookup(a, d)
			if !ok {
				continue
			}
			if v > best.Value || (best.Value == Neutral && v < Neutral) {
				best = Evaluation{Value: v, Attacker: a, Defender: d}
			}
		}
	}
	return best
}

// Effectiveness evaluates against the default relation and returns only
// the multiplier.
func Effectiveness(attacker, defender []archetype.Archetype) float64 {
	return defaultRelation.Evaluate(attacker, defender).Value
}
