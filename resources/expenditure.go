// Package resources rolls a player's resolved build order up into spending
// categories and compares it with what the game reported.
package resources

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/aoe4analyze/buildorder"
	"github.com/domino14/aoe4analyze/gamesummary"
	"github.com/domino14/aoe4analyze/staticdata"
)

type Totals = gamesummary.ResourceTotals

// Item is every production of one named thing within a category.
type Item struct {
	Name      string
	Count     int
	UnitCost  Totals
	TotalCost Totals
}

type Category struct {
	Count int
	Cost  Totals
	Items []Item
}

type Breakdown struct {
	AgeUps        Category
	Buildings     Category
	MilitaryUnits Category
	Villagers     Category
	Upgrades      Category
	Other         Category
}

func (b *Breakdown) categories() []*Category {
	return []*Category{&b.AgeUps, &b.Buildings, &b.MilitaryUnits, &b.Villagers, &b.Upgrades, &b.Other}
}

type Expenditure struct {
	Gathered Totals
	Spent    Totals
	Unspent  Totals
	// GatherRate is the mean per-minute gather rate over the game.
	GatherRate Totals
	Breakdown  Breakdown
}

func fromCosts(c staticdata.Costs) Totals {
	return Totals{Food: c.Food, Gold: c.Gold, Stone: c.Stone, Wood: c.Wood, Total: c.Total}
}

func (c *Category) add(it buildorder.Item) {
	n := len(it.Produced)
	if n == 0 {
		return
	}
	unit := fromCosts(it.Cost)
	total := unit.Scale(float64(n))
	c.Count += n
	c.Cost = c.Cost.Add(total)

	for i := range c.Items {
		if c.Items[i].Name == it.Name {
			c.Items[i].Count += n
			c.Items[i].TotalCost = c.Items[i].TotalCost.Add(total)
			return
		}
	}
	c.Items = append(c.Items, Item{Name: it.Name, Count: n, UnitCost: unit, TotalCost: total})
}

// Calculate categorizes resolved items. Age markers carry no cost and are
// skipped; the landmark that triggered the age-up is counted instead.
func Calculate(p *gamesummary.Player, items []buildorder.Item) *Expenditure {
	exp := &Expenditure{
		Gathered:   p.TotalResourcesGathered,
		Spent:      p.TotalResourcesSpent,
		Unspent:    p.TotalResourcesGathered.Sub(p.TotalResourcesSpent),
		GatherRate: GatherRates(p.Resources),
	}
	b := &exp.Breakdown
	for _, it := range items {
		switch it.Kind {
		case buildorder.KindAge:
		case buildorder.KindBuilding:
			if it.IsLandmark() {
				b.AgeUps.add(it)
			} else {
				b.Buildings.add(it)
			}
		case buildorder.KindUnit:
			if it.IsVillager() {
				b.Villagers.add(it)
			} else {
				b.MilitaryUnits.add(it)
			}
		case buildorder.KindUpgrade:
			b.Upgrades.add(it)
		default:
			b.Other.add(it)
		}
	}
	return exp
}

// Calculated is the sum over every category.
func (e *Expenditure) Calculated() Totals {
	return lo.Reduce(e.Breakdown.categories(), func(acc Totals, c *Category, _ int) Totals {
		return acc.Add(c.Cost)
	}, Totals{})
}

// Untracked is reported spending the build order does not account for.
func (e *Expenditure) Untracked() float64 {
	return e.Spent.Total - e.Calculated().Total
}

// GatherRates averages the per-minute gather rate samples. The sample at
// time zero is always empty and is ignored.
func GatherRates(ts gamesummary.TimeSeries) Totals {
	mean := func(xs []float64) float64 {
		if len(xs) > 0 && len(ts.Timestamps) > 0 && ts.Timestamps[0] == 0 {
			xs = xs[1:]
		}
		if len(xs) == 0 {
			return 0
		}
		return stat.Mean(xs, nil)
	}
	r := Totals{
		Food:  mean(ts.FoodPerMin),
		Gold:  mean(ts.GoldPerMin),
		Stone: mean(ts.StonePerMin),
		Wood:  mean(ts.WoodPerMin),
	}
	r.Total = r.Food + r.Gold + r.Stone + r.Wood
	return r
}
