package cli

import (
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"lukechampine.com/frand"

	"github.com/domino14/aoe4analyze/archetype"
	"github.com/domino14/aoe4analyze/matchup"
	"github.com/domino14/aoe4analyze/upgrades"
)

const defaultSeed = "demo-seed"

// seededRNG derives a deterministic generator from a seed string, so the
// same seed always prints the same demo.
func seededRNG(seed string) *frand.RNG {
	sum := sha256.Sum256([]byte(seed))
	return frand.NewCustom(sum[:], 1024, 12)
}

// sample returns n elements of a shuffled copy of xs.
func sample[T any](rng *frand.RNG, xs []T, n int) []T {
	c := append([]T(nil), xs...)
	rng.Shuffle(len(c), func(i, j int) { c[i], c[j] = c[j], c[i] })
	return c[:min(n, len(c))]
}

var (
	sampleIcons = []string{
		"icons/races/english/units/longbowman",
		"icons/races/malian/units/musofadi_2",
		"icons/races/french/units/knight_3.png",
		"icons/races/ottoman/units/janissary_4.webp",
		"icons/races/chinese/units/zhuganunu_5",
	}
	sampleUpgrades = []string{
		"upgradeWeaponsDamageII",
		"upgradeWeaponsDamage2",
		"upgradeRangedArmorIII",
		"upgradeMeleeArmorI",
		"unknownUpgradeKey",
	}
)

func (a *app) upgradeParsingCmd() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "test-upgrade-parsing",
		Short: "Run a demo of upgrade and tier parsing",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rng := seededRNG(seed)
			out := cmd.OutOrStdout()
			st := newStyles(out)

			fmt.Fprintln(out, st.heading.Render("Unit tier parsing:"))
			for _, icon := range sample(rng, sampleIcons, 3) {
				tier := upgrades.TierFromIcon(icon)
				fmt.Fprintf(out, "%s -> %s (tier %d, x%.2f)\n", icon, tier, int(tier), tier.Multiplier())
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, st.heading.Render("Upgrade effect lookup:"))
			for _, key := range sample(rng, sampleUpgrades, 3) {
				if e, ok := upgrades.Lookup(key); ok {
					fmt.Fprintf(out, "%s -> type=%s, bonus=%g, level=%d\n", key, e.Type, e.Bonus, e.Level)
				} else {
					fmt.Fprintf(out, "%s -> unknown upgrade\n", key)
				}
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, st.hint.Render("Seed used: "+seed))
		},
	}
	cmd.Flags().StringVar(&seed, "seed", defaultSeed, "seed for deterministic random sampling")
	return cmd
}

type sampleUnit struct {
	id   string
	desc archetype.Descriptor
}

var sampleUnits = []sampleUnit{
	{"spearman", archetype.Descriptor{Name: "Spearman", BaseID: "spearman",
		Classes: []string{"Spear", "Light Melee Infantry"}, DisplayClasses: []string{"Spear Infantry"}}},
	{"knight", archetype.Descriptor{Name: "Knight", BaseID: "knight",
		Classes: []string{"Heavy Melee Cavalry"}, DisplayClasses: []string{"Cavalry"}}},
	{"crossbowman", archetype.Descriptor{Name: "Crossbowman", BaseID: "crossbowman",
		Classes: []string{"Heavy Ranged Infantry"}, DisplayClasses: []string{"Ranged Infantry"}}},
	{"man_at_arms", archetype.Descriptor{Name: "Man-at-Arms", BaseID: "man_at_arms",
		Classes: []string{"Heavy Melee Infantry"}, DisplayClasses: []string{"Infantry"}}},
}

var fallbackCost = map[string]float64{
	"spearman":    80,
	"crossbowman": 120,
	"knight":      240,
	"man_at_arms": 140,
}

// costLookup prices units by base id from the cached static data. The demo
// works offline, so a missing or stale cache just leaves it empty.
func (a *app) costLookup() map[string]float64 {
	costs := map[string]float64{}
	c, err := a.store().ReadCache()
	if err != nil {
		log.Debug().Err(err).Msg("demo-without-static-data")
		return costs
	}
	for _, u := range c.Units {
		key := u.BaseID
		if key == "" {
			key = u.ID
		}
		costs[strings.ToLower(key)] = u.Costs.Sum()
	}
	return costs
}

func writeComposition(w io.Writer, st styles, title string, army []matchup.UnitWithValue) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.section.Render(title+" composition:"))
	for _, u := range army {
		fmt.Fprintf(w, "  - %dx %s (%g each) raw %.2f\n", u.Count, u.Name, u.EffectiveValue, u.Raw())
	}
}

func (a *app) countersCmd() *cobra.Command {
	var seed string
	cmd := &cobra.Command{
		Use:   "test-counters",
		Short: "Run a demo of counter classification and matchup analysis",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			st := newStyles(out)
			costs := a.costLookup()
			value := func(u sampleUnit) float64 {
				key := strings.ToLower(u.desc.BaseID)
				if v, ok := costs[key]; ok {
					return v
				}
				if v, ok := fallbackCost[key]; ok {
					return v
				}
				return 100
			}

			fmt.Fprintln(out, st.heading.Render("Unit classification:"))
			for _, u := range sampleUnits {
				names := archetype.Strings(archetype.Classify(u.desc))
				fmt.Fprintf(out, "%s: %s\n", u.desc.Name, strings.Join(names, ", "))
			}

			rng := seededRNG(seed)
			army := func() []matchup.UnitWithValue {
				var army []matchup.UnitWithValue
				for _, u := range sample(rng, sampleUnits, 2) {
					army = append(army, matchup.UnitWithValue{
						UnitID:         u.id,
						Name:           u.desc.Name,
						Count:          8 + rng.Intn(5),
						EffectiveValue: value(u),
						Classes:        u.desc.Classes,
					})
				}
				return army
			}
			army1, army2 := army(), army()

			fmt.Fprintln(out)
			fmt.Fprintln(out, st.title.Render("Value-adjusted matchup:"))
			m := matchup.CompareValueAdjusted(army1, army2)
			fmt.Fprintln(out, st.hint.Render("Seed used: "+seed))
			writeComposition(out, st, "Army 1", army1)
			writeComposition(out, st, "Army 2", army2)
			fmt.Fprintln(out)
			fmt.Fprintln(out, matchup.FormatValueAdjusted(m, "Army 1", "Army 2"))
		},
	}
	cmd.Flags().StringVar(&seed, "seed", defaultSeed, "seed for deterministic random matchup demo")
	return cmd
}
