package matchup

import "github.com/domino14/aoe4analyze/archetype"

// Side identifies one of the two compared armies.
type Side int

const (
	// Neither means the comparison came out even.
	Neither Side = iota
	Army1
	Army2
)

// String returns a string representation of the side.
func (s Side) String() string {
	switch s {
	case Army1:
		return "army 1"
	case Army2:
		return "army 2"
	default:
		return "even"
	}
}

// Impact is how strongly a counter multiplier moves a single pairing.
type Impact int

const (
	ImpactLow Impact = iota
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactHigh:
		return "high"
	case ImpactMedium:
		return "medium"
	default:
		return "low"
	}
}

// UnitCount is one unit type in an army for the count-based analyzer. The
// unit's classes come from the reference data the analyzer is given.
type UnitCount struct {
	UnitID         string
	Count          int
	EffectiveValue float64
}

// UnitWithValue carries its own name and classes, so the value-adjusted
// analyzer needs no reference data.
type UnitWithValue struct {
	UnitID         string
	Name           string
	Count          int
	EffectiveValue float64
	Classes        []string
}

// Raw is count times effective value.
func (u UnitWithValue) Raw() float64 {
	return float64(u.Count) * u.EffectiveValue
}

// CounterMatchup is one impactful pairing from the count-based analyzer.
type CounterMatchup struct {
	Attacker      string
	Defender      string
	Effectiveness float64 // rounded to 2 places
	Impact        float64 // attacker power x defender weight x (effectiveness - 1)
}

// MatchupAnalysis is the count-based verdict. Score is army 1 minus army 2.
type MatchupAnalysis struct {
	Favored          Side
	Score            float64
	AdvantagePercent float64 // fraction of the combined score
	KeyMatchups      []CounterMatchup
}

// MatchupDetail is one attacker unit against one defender unit.
type MatchupDetail struct {
	AttackerName  string
	AttackerValue float64
	AttackerClass string
	DefenderName  string
	DefenderValue float64
	DefenderClass string

	Multiplier        float64
	ValueAfterCounter float64
	Impact            Impact
	Narrative         string
}

// UnitAdjustedSummary aggregates every pairing of one unit.
type UnitAdjustedSummary struct {
	UnitID        string
	UnitName      string
	RawTotal      float64
	AdjustedTotal float64
}

// ValueAdjustedMatchup is the value-adjusted verdict. Values are rounded to
// 2 places and AdvantagePercent to 4.
type ValueAdjustedMatchup struct {
	Army1RawValue      float64
	Army2RawValue      float64
	Army1AdjustedValue float64
	Army2AdjustedValue float64

	Favored Side
	// AdvantagePercent is the favored side's edge as a fraction of the
	// underdog's adjusted value.
	AdvantagePercent float64

	KeyMatchups []MatchupDetail
	Explanation string

	Army1Breakdown []UnitAdjustedSummary
	Army2Breakdown []UnitAdjustedSummary
}

// classOrUnknown is the label shown for a unit whose evaluation chose no
// archetype.
func classOrUnknown(chosen archetype.Archetype, all []archetype.Archetype) string {
	if chosen != archetype.Unknown {
		return chosen.String()
	}
	if len(all) > 0 {
		return all[0].String()
	}
	return archetype.Unknown.String()
}
