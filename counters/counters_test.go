package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/aoe4analyze/archetype"
	"github.com/domino14/aoe4analyze/stats"
)

func TestReciprocalSymmetry(t *testing.T) {
	r := Default()
	for _, p := range BasePairs {
		v, ok := r.Lookup(p.Attacker, p.Defender)
		require.True(t, ok, "%s->%s", p.Attacker, p.Defender)
		assert.Equal(t, p.Value, v)

		rv, ok := r.Lookup(p.Defender, p.Attacker)
		require.True(t, ok, "%s->%s", p.Defender, p.Attacker)
		assert.Equal(t, stats.Round2(1/p.Value), rv)
	}
	assert.Len(t, r.Pairs(), 2*len(BasePairs))
}

func TestRelationIsSparse(t *testing.T) {
	_, ok := Default().Lookup(archetype.Monk, archetype.Hero)
	assert.False(t, ok)
	_, ok = Default().Lookup(archetype.Unknown, archetype.Siege)
	assert.False(t, ok)
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	_, err := New([]Pair{
		{archetype.Spearman, archetype.HeavyMeleeCavalry, 1.5},
		{archetype.HeavyMeleeCavalry, archetype.Spearman, 0.5},
	})
	assert.ErrorContains(t, err, "already set")

	_, err = New([]Pair{{archetype.Spearman, archetype.Siege, 0}})
	assert.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	r := Default()
	for _, tc := range []struct {
		name     string
		att, def []archetype.Archetype
		value    float64
		chosenA  archetype.Archetype
		chosenD  archetype.Archetype
	}{
		{
			name:    "spearman vs knight",
			att:     []archetype.Archetype{archetype.Spearman},
			def:     []archetype.Archetype{archetype.HeavyMeleeCavalry},
			value:   1.5,
			chosenA: archetype.Spearman,
			chosenD: archetype.HeavyMeleeCavalry,
		},
		{
			name:    "crossbow vs knight",
			att:     []archetype.Archetype{archetype.HeavyRangedInfantry},
			def:     []archetype.Archetype{archetype.HeavyMeleeCavalry},
			value:   1.4,
			chosenA: archetype.HeavyRangedInfantry,
			chosenD: archetype.HeavyMeleeCavalry,
		},
		{
			name:    "knight vs crossbow",
			att:     []archetype.Archetype{archetype.HeavyMeleeCavalry},
			def:     []archetype.Archetype{archetype.HeavyRangedInfantry},
			value:   0.71,
			chosenA: archetype.HeavyMeleeCavalry,
			chosenD: archetype.HeavyRangedInfantry,
		},
		{
			name:    "siege vs ranged cavalry hero",
			att:     []archetype.Archetype{archetype.Siege},
			def:     []archetype.Archetype{archetype.Hero, archetype.LightRangedCavalry},
			value:   0.67,
			chosenA: archetype.Siege,
			chosenD: archetype.LightRangedCavalry,
		},
		{
			name:    "no modeled pair is neutral",
			att:     []archetype.Archetype{archetype.Monk},
			def:     []archetype.Archetype{archetype.Hero},
			value:   1.0,
			chosenA: archetype.Unknown,
			chosenD: archetype.Unknown,
		},
		{
			name:    "empty attacker is neutral",
			att:     nil,
			def:     []archetype.Archetype{archetype.Siege},
			value:   1.0,
			chosenA: archetype.Unknown,
			chosenD: archetype.Unknown,
		},
		{
			// siege->light_ranged_cavalry (0.67) is found first, the
			// spearman advantage later still wins.
			name:    "advantage beats earlier disadvantage",
			att:     []archetype.Archetype{archetype.Siege, archetype.Spearman},
			def:     []archetype.Archetype{archetype.LightRangedCavalry},
			value:   1.4,
			chosenA: archetype.Spearman,
			chosenD: archetype.LightRangedCavalry,
		},
		{
			// heavy_melee_cavalry->spearman is 0.67, ->heavy_ranged_infantry
			// is 0.71. The first takes the slot, the milder one replaces it.
			name:    "disadvantages only",
			att:     []archetype.Archetype{archetype.HeavyMeleeCavalry},
			def:     []archetype.Archetype{archetype.Spearman, archetype.HeavyRangedInfantry},
			value:   0.71,
			chosenA: archetype.HeavyMeleeCavalry,
			chosenD: archetype.HeavyRangedInfantry,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Evaluate(tc.att, tc.def)
			assert.Equal(t, tc.value, got.Value)
			assert.Equal(t, tc.chosenA, got.Attacker)
			assert.Equal(t, tc.chosenD, got.Defender)
			assert.Equal(t, tc.chosenA != archetype.Unknown, got.Chosen())
		})
	}
}

func TestAdvantageNeverLosesToDisadvantage(t *testing.T) {
	r := Default()
	for _, a1 := range archetype.All {
		for _, a2 := range archetype.All {
			att := []archetype.Archetype{a1, a2}
			for _, d := range archetype.All {
				def := []archetype.Archetype{d}
				best := 0.0
				for _, a := range att {
					if v, ok := r.Lookup(a, d); ok && v > best {
						best = v
					}
				}
				got := r.Evaluate(att, def).Value
				if best > 1 {
					assert.Equal(t, best, got, "%v vs %v", att, def)
				}
			}
		}
	}
}

func TestEffectivenessUsesDefault(t *testing.T) {
	got := Effectiveness(
		[]archetype.Archetype{archetype.LightMeleeCavalry},
		[]archetype.Archetype{archetype.Siege},
	)
	assert.Equal(t, 1.5, got)
}
