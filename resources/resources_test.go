package resources_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/aoe4analyze/buildorder"
	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/resources"
	"github.com/domino14/aoe4analyze/staticdata"
	"github.com/domino14/aoe4analyze/testhelpers"
)

func aliceExpenditure(t *testing.T) (*gamesummary.Player, *resources.Expenditure) {
	t.Helper()
	s := testhelpers.GameSummary()
	alice := s.Players[0]
	res := buildorder.NewResolver(testhelpers.StaticData()).ResolveAll(alice)
	require.NoError(t, res.Validate())
	return alice, resources.Calculate(alice, res.Items)
}

func TestCalculateCategories(t *testing.T) {
	_, exp := aliceExpenditure(t)
	b := exp.Breakdown

	assert.Equal(t, 2, b.Villagers.Count)
	assert.Equal(t, 100.0, b.Villagers.Cost.Total)

	assert.Equal(t, 2, b.Buildings.Count)
	assert.Equal(t, 200.0, b.Buildings.Cost.Wood)

	assert.Equal(t, 1, b.AgeUps.Count)
	assert.Equal(t, 600.0, b.AgeUps.Cost.Total)

	assert.Equal(t, 4, b.MilitaryUnits.Count)
	assert.Equal(t, 380.0, b.MilitaryUnits.Cost.Total)
	require.Len(t, b.MilitaryUnits.Items, 2)
	assert.Equal(t, resources.Item{
		Name:      "Spearman",
		Count:     3,
		UnitCost:  resources.Totals{Food: 60, Wood: 20, Total: 80},
		TotalCost: resources.Totals{Food: 180, Wood: 60, Total: 240},
	}, b.MilitaryUnits.Items[0])

	assert.Equal(t, 125.0, b.Upgrades.Cost.Total)

	// the sheep is free but still counted
	assert.Equal(t, 1, b.Other.Count)
	assert.Zero(t, b.Other.Cost.Total)

	assert.Equal(t, 1405.0, exp.Calculated().Total)
	assert.Equal(t, 1895.0, exp.Untracked())
	assert.Equal(t, resources.Totals{Food: 500, Gold: 100, Stone: 100, Wood: 300, Total: 1000}, exp.Unspent)
	assert.Equal(t, resources.Totals{Food: 400, Wood: 300, Total: 700}, exp.GatherRate)
}

func TestCalculateMergesByName(t *testing.T) {
	spear := buildorder.Item{
		Kind: buildorder.KindUnit, Name: "Spearman",
		Cost: staticdata.Costs{Food: 60, Wood: 20, Total: 80},
	}
	a, b := spear, spear
	a.Produced = []int{10, 20}
	b.Produced = []int{30}
	empty := spear
	age := buildorder.Item{Kind: buildorder.KindAge, Name: "Feudal Age", Produced: []int{300}}

	exp := resources.Calculate(&gamesummary.Player{}, []buildorder.Item{a, b, empty, age})
	require.Len(t, exp.Breakdown.MilitaryUnits.Items, 1)
	assert.Equal(t, 3, exp.Breakdown.MilitaryUnits.Items[0].Count)
	assert.Equal(t, 240.0, exp.Breakdown.MilitaryUnits.Items[0].TotalCost.Total)
	assert.Zero(t, exp.Breakdown.Other.Count)
}

func TestFormat(t *testing.T) {
	alice, exp := aliceExpenditure(t)
	out := resources.Format(exp, alice.Name, alice.Civilization, false)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Resource Expenditure - Alice (english)", lines[0])
	assert.Equal(t, strings.Repeat("═", 55), lines[1])
	assert.Equal(t, "Gathered: 2,000 Food |   500 Gold |   300 Stone | 1,500 Wood | Total:  4,300", lines[2])
	assert.Equal(t, "Spent:    1,500 Food |   400 Gold |   200 Stone | 1,200 Wood | Total:  3,300", lines[3])
	assert.Equal(t, "Unspent:    500 Food |   100 Gold |   100 Stone |   300 Wood | Total:  1,000", lines[4])
	assert.Equal(t, "Rate/min:   400 Food |     0 Gold |     0 Stone |   300 Wood | Total:    700", lines[5])
	assert.Equal(t, "Breakdown by Category:", lines[7])

	assert.Contains(t, out, "Landmarks (1):          200 Gold | 400 Wood | Total: 600\n  • Council Hall (400W/200G)")
	assert.Contains(t, out, "Military Units (4):     260 Food | 60 Gold | 60 Wood | Total: 380\n"+
		"  • Spearman (60F/20W) x3 (180F/60W total)\n"+
		"  • Shinobi (80F/60G)")
	assert.Contains(t, out, "Other (1):              0 | Total: 0\n  • Sheep")
	assert.True(t, strings.HasSuffix(out,
		"Calculated from build order: 1,405 resources\n"+
			"Reported spent:              3,300 resources\n"+
			"Difference:                  1,895 (untracked spending)"))
}

func TestFormatCapsItems(t *testing.T) {
	var items []buildorder.Item
	for i := range 7 {
		items = append(items, buildorder.Item{
			Kind:     buildorder.KindBuilding,
			Name:     fmt.Sprintf("B%d", i),
			Cost:     staticdata.Costs{Wood: float64(10 * (i + 1)), Total: float64(10 * (i + 1))},
			Produced: []int{5},
		})
	}
	p := &gamesummary.Player{TotalResourcesSpent: resources.Totals{Wood: 280, Total: 280}}
	exp := resources.Calculate(p, items)

	short := resources.Format(exp, "P", "civ", false)
	assert.Contains(t, short, "  • B6 (70W)")
	assert.Contains(t, short, "  • B2 (30W)")
	assert.NotContains(t, short, "  • B1 ")
	assert.Contains(t, short, "  • ... and 2 more")
	assert.NotContains(t, short, "Difference:")
	assert.NotContains(t, short, "Rate/min:")

	long := resources.Format(exp, "P", "civ", true)
	assert.Contains(t, long, "  • B0 (10W)")
	assert.NotContains(t, long, "more")
}

func TestGatherRates(t *testing.T) {
	alice := testhelpers.GameSummary().Players[0]
	r := resources.GatherRates(alice.Resources)
	assert.Equal(t, resources.Totals{Food: 400, Wood: 300, Total: 700}, r)
	assert.Equal(t, resources.Totals{}, resources.GatherRates(gamesummary.TimeSeries{}))
}
