// Package matchup compares two armies through the counter relation. The
// count-based analyzer weighs unit power by the opposing composition and
// reports the most impactful counters; the value-adjusted analyzer
// additionally itemizes every unit pairing and explains the verdict.
package matchup

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/aoe4analyze/archetype"
	"github.com/domino14/aoe4analyze/counters"
	"github.com/domino14/aoe4analyze/stats"
)

const (
	// impactFloor drops count-based impact records that are only noise.
	impactFloor = 0.001
	// countTolerance is the score gap needed to favor a side in the
	// count-based analyzer.
	countTolerance = 0.001
	// valueTolerance is the same gap for rounded adjusted values.
	valueTolerance = 0.01
	// minDeviation keeps near-neutral pairs out of count-based key matchups.
	minDeviation = 0.01

	maxKeyMatchups = 5
)

// UnitLookup resolves a unit id to the metadata used for classification.
// Unknown ids classify as neutral.
type UnitLookup map[string]archetype.Descriptor

// Analyzer compares armies using one counter relation. It holds no state
// between calls and is safe for concurrent use.
type Analyzer struct {
	relation *counters.Relation
}

// New creates an Analyzer. A nil relation selects counters.Default().
func New(relation *counters.Relation) *Analyzer {
	if relation == nil {
		relation = counters.Default()
	}
	return &Analyzer{relation: relation}
}

// classCache holds classifications for the duration of one comparison.
type classCache map[string][]archetype.Archetype

func (c classCache) get(id string, describe func() archetype.Descriptor) []archetype.Archetype {
	if tags, ok := c[id]; ok {
		return tags
	}
	tags := archetype.Classify(describe())
	c[id] = tags
	return tags
}

// AnalyzeArmyMatchup runs the count-based comparison with the default
// relation.
func AnalyzeArmyMatchup(army1, army2 []UnitCount, units UnitLookup) *MatchupAnalysis {
	return New(nil).CompareCounts(army1, army2, units)
}

// CompareValueAdjusted runs the value-adjusted comparison with the default
// relation.
func CompareValueAdjusted(army1, army2 []UnitWithValue) *ValueAdjustedMatchup {
	return New(nil).CompareValues(army1, army2)
}

func strength(army []UnitCount) float64 {
	return lo.SumBy(army, func(u UnitCount) float64 {
		return float64(u.Count) * u.EffectiveValue
	})
}

type impactRecord struct {
	attacker, defender string
	effectiveness      float64
	impact             float64
}

// scoreArmy weighs every attacker against the defending composition.
func (a *Analyzer) scoreArmy(attacking, defending []UnitCount, units UnitLookup,
	cache classCache) (float64, []impactRecord) {

	resolve := func(id string) []archetype.Archetype {
		return cache.get(id, func() archetype.Descriptor { return units[id] })
	}
	defStrength := strength(defending)
	var records []impactRecord
	total := 0.0
	for _, att := range attacking {
		attTags := resolve(att.UnitID)
		power := float64(att.Count) * att.EffectiveValue
		if defStrength == 0 {
			total += power
			continue
		}
		weighted := 0.0
		for _, def := range defending {
			weight := float64(def.Count) * def.EffectiveValue / defStrength
			eff := a.relation.Evaluate(attTags, resolve(def.UnitID)).Value
			impact := power * weight * (eff - 1)
			weighted += eff * weight
			if math.Abs(impact) > impactFloor {
				records = append(records, impactRecord{att.UnitID, def.UnitID, eff, impact})
			}
		}
		total += power * weighted
	}
	return total, records
}

// CompareCounts scores each army against the other's composition. Units are
// classified through the lookup once per call.
func (a *Analyzer) CompareCounts(army1, army2 []UnitCount, units UnitLookup) *MatchupAnalysis {
	cache := classCache{}
	score1, records1 := a.scoreArmy(army1, army2, units, cache)
	score2, records2 := a.scoreArmy(army2, army1, units, cache)

	diff := score1 - score2
	sum := score1 + score2
	advantage := 0.0
	if sum != 0 {
		advantage = math.Abs(diff) / sum
	}

	favored := Neither
	var source []impactRecord
	switch {
	case diff > countTolerance:
		favored = Army1
		source = records1
	case diff < -countTolerance:
		favored = Army2
		source = records2
	default:
		source = append(slices.Clip(records1), records2...)
	}

	source = lo.Filter(source, func(r impactRecord, _ int) bool {
		return math.Abs(r.effectiveness-1) > minDeviation
	})
	slices.SortStableFunc(source, func(x, y impactRecord) int {
		return cmp.Compare(math.Abs(y.impact), math.Abs(x.impact))
	})
	source = source[:min(len(source), maxKeyMatchups)]

	return &MatchupAnalysis{
		Favored:          favored,
		Score:            stats.Round2(diff),
		AdvantagePercent: stats.Round4(advantage),
		KeyMatchups: lo.Map(source, func(r impactRecord, _ int) CounterMatchup {
			return CounterMatchup{
				Attacker:      r.attacker,
				Defender:      r.defender,
				Effectiveness: stats.Round2(r.effectiveness),
				Impact:        r.impact,
			}
		}),
	}
}

// Descriptor is the classifier view of a unit that carries its own classes.
func (u UnitWithValue) Descriptor() archetype.Descriptor {
	return archetype.Descriptor{
		Name:           u.Name,
		BaseID:         u.UnitID,
		Classes:        u.Classes,
		DisplayClasses: u.Classes,
	}
}

// impactTier compares the weighted deviation against weighted thresholds.
func impactTier(multiplier, weight, raw float64) Impact {
	score := math.Abs(multiplier-1) * weight * raw
	switch {
	case score >= raw*0.2*weight:
		return ImpactHigh
	case score >= raw*0.1*weight:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func narrative(attacker, defender string, multiplier float64) string {
	switch {
	case multiplier == counters.Neutral:
		return fmt.Sprintf("%s trades evenly into %s", attacker, defender)
	case multiplier > counters.Neutral:
		return fmt.Sprintf("%s exploits %s (%.2fx)", attacker, defender, multiplier)
	default:
		return fmt.Sprintf("%s is punished by %s (%.2fx)", attacker, defender, multiplier)
	}
}

type sideResult struct {
	adjusted  float64
	details   []MatchupDetail
	breakdown []UnitAdjustedSummary
}

func (a *Analyzer) adjustArmy(attacking, defending []UnitWithValue, defRaw float64,
	cache classCache) sideResult {

	var res sideResult
	index := map[string]int{}
	for _, att := range attacking {
		attTags := cache.get(att.UnitID, att.Descriptor)
		attRaw := att.Raw()

		i, seen := index[att.UnitID]
		if !seen {
			i = len(res.breakdown)
			index[att.UnitID] = i
			res.breakdown = append(res.breakdown, UnitAdjustedSummary{
				UnitID:   att.UnitID,
				UnitName: att.Name,
			})
		}
		res.breakdown[i].RawTotal += attRaw

		if defRaw == 0 {
			res.adjusted += attRaw
			res.breakdown[i].AdjustedTotal += attRaw
			continue
		}
		for _, def := range defending {
			defTags := cache.get(def.UnitID, def.Descriptor)
			weight := def.Raw() / defRaw
			ev := a.relation.Evaluate(attTags, defTags)
			after := attRaw * ev.Value * weight
			res.adjusted += after
			res.breakdown[i].AdjustedTotal += after

			res.details = append(res.details, MatchupDetail{
				AttackerName:      att.Name,
				AttackerValue:     attRaw,
				AttackerClass:     classOrUnknown(ev.Attacker, attTags),
				DefenderName:      def.Name,
				DefenderValue:     def.Raw(),
				DefenderClass:     classOrUnknown(ev.Defender, defTags),
				Multiplier:        stats.Round2(ev.Value),
				ValueAfterCounter: stats.Round2(after),
				Impact:            impactTier(ev.Value, weight, attRaw),
				Narrative:         narrative(att.Name, def.Name, ev.Value),
			})
		}
	}
	for i := range res.breakdown {
		res.breakdown[i].RawTotal = stats.Round2(res.breakdown[i].RawTotal)
		res.breakdown[i].AdjustedTotal = stats.Round2(res.breakdown[i].AdjustedTotal)
	}
	return res
}

// CompareValues prices every attacker-defender pairing by the counter
// multiplier and the defender's share of its army, then explains which side
// comes out ahead and why.
func (a *Analyzer) CompareValues(army1, army2 []UnitWithValue) *ValueAdjustedMatchup {
	raw1 := lo.SumBy(army1, UnitWithValue.Raw)
	raw2 := lo.SumBy(army2, UnitWithValue.Raw)
	cache := classCache{}
	side1 := a.adjustArmy(army1, army2, raw2, cache)
	side2 := a.adjustArmy(army2, army1, raw1, cache)

	adj1 := stats.Round2(side1.adjusted)
	adj2 := stats.Round2(side2.adjusted)

	favored := Neither
	fav, under := adj2, adj1
	switch {
	case adj1 > adj2+valueTolerance:
		favored = Army1
		fav, under = adj1, adj2
	case adj2 > adj1+valueTolerance:
		favored = Army2
	}
	advantage := 0.0
	if favored != Neither && under != 0 {
		advantage = stats.Round4((fav - under) / under)
	}

	all := append(slices.Clip(side1.details), side2.details...)
	slices.SortStableFunc(all, func(x, y MatchupDetail) int {
		return cmp.Compare(swing(y), swing(x))
	})
	key := all[:min(len(all), maxKeyMatchups)]

	return &ValueAdjustedMatchup{
		Army1RawValue:      stats.Round2(raw1),
		Army2RawValue:      stats.Round2(raw2),
		Army1AdjustedValue: adj1,
		Army2AdjustedValue: adj2,
		Favored:            favored,
		AdvantagePercent:   advantage,
		KeyMatchups:        key,
		Explanation:        explain(favored, raw1, raw2, key),
		Army1Breakdown:     side1.breakdown,
		Army2Breakdown:     side2.breakdown,
	}
}

// swing ranks a pairing by how far the counter moved its value.
func swing(d MatchupDetail) float64 {
	return math.Abs(d.Multiplier-1) * d.ValueAfterCounter
}

func explain(favored Side, raw1, raw2 float64, key []MatchupDetail) string {
	if favored == Neither {
		return "Direct engagement is roughly even after adjusting for counters and value."
	}
	driver := "counter advantages"
	if len(key) > 0 {
		driver = key[0].Narrative
	}
	gap := raw1 - raw2
	if (favored == Army1 && gap < 0) || (favored == Army2 && gap > 0) {
		return "Counters overcome the raw value disadvantage: " + driver
	}
	return "Raw value lead is reinforced by " + driver
}
