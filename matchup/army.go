package matchup

import (
	"github.com/samber/lo"

	"github.com/domino14/aoe4analyze/buildorder"
)

// ArmyFromBuild collects the military units still alive at the end of a
// resolved build order. The two halves of a split entry count as one, so its
// deaths are subtracted once. Entries sharing a unit id merge in first-seen
// order; when their tiers differ the merged effective value is the
// count-weighted mean.
func ArmyFromBuild(items []buildorder.Item) []UnitWithValue {
	type entry struct {
		item     buildorder.Item
		produced int
	}
	var entries []*entry
	bySeq := map[int]*entry{}
	for _, it := range items {
		if !it.IsMilitary() {
			continue
		}
		if e, ok := bySeq[it.Seq]; ok && it.Seq > 0 {
			e.produced += len(it.Produced)
			continue
		}
		e := &entry{item: it, produced: len(it.Produced)}
		if it.Seq > 0 {
			bySeq[it.Seq] = e
		}
		entries = append(entries, e)
	}

	var army []UnitWithValue
	index := map[string]int{}
	for _, e := range entries {
		it := e.item
		alive := max(e.produced-len(it.Destroyed), 0)
		if alive == 0 {
			continue
		}
		value := it.Cost.Total * it.TierMultiplier
		i, seen := index[it.ID]
		if !seen {
			index[it.ID] = len(army)
			army = append(army, UnitWithValue{
				UnitID:         it.ID,
				Name:           it.Name,
				Count:          alive,
				EffectiveValue: value,
				Classes:        it.Classes,
			})
			continue
		}
		u := &army[i]
		raw := u.Raw() + float64(alive)*value
		u.Count += alive
		u.EffectiveValue = raw / float64(u.Count)
	}
	return army
}

// Counts drops names and classes for the count-based analyzer.
func Counts(army []UnitWithValue) []UnitCount {
	return lo.Map(army, func(u UnitWithValue, _ int) UnitCount {
		return UnitCount{UnitID: u.UnitID, Count: u.Count, EffectiveValue: u.EffectiveValue}
	})
}
