package resources

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/aoe4analyze/stats"
)

const maxItems = 5

var printer = message.NewPrinter(language.English)

func num(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func resourceLine(label string, r Totals) string {
	return printer.Sprintf("%-10s%5s Food | %5s Gold | %5s Stone | %5s Wood | Total: %6s",
		label, num(r.Food), num(r.Gold), num(r.Stone), num(r.Wood), num(r.Total))
}

func categoryHeader(name string, c Category) string {
	var parts []string
	for _, p := range []struct {
		v     float64
		label string
	}{{c.Cost.Food, "Food"}, {c.Cost.Gold, "Gold"}, {c.Cost.Stone, "Stone"}, {c.Cost.Wood, "Wood"}} {
		if p.v > 0 {
			parts = append(parts, num(p.v)+" "+p.label)
		}
	}
	cost := "0"
	if len(parts) > 0 {
		cost = strings.Join(parts, " | ")
	}
	head := name + " (" + strconv.Itoa(c.Count) + "):"
	return printer.Sprintf("%-24s%s | Total: %s", head, cost, num(c.Cost.Total))
}

func costParts(r Totals) string {
	var parts []string
	for _, p := range []struct {
		v      float64
		suffix string
	}{{r.Food, "F"}, {r.Wood, "W"}, {r.Gold, "G"}, {r.Stone, "S"}} {
		if p.v > 0 {
			parts = append(parts, plain(p.v)+p.suffix)
		}
	}
	return strings.Join(parts, "/")
}

func categoryItems(c Category, verbose bool) []string {
	sorted := slices.Clone(c.Items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Compare(b.TotalCost.Total, a.TotalCost.Total)
	})
	shown := sorted
	if !verbose && len(sorted) > maxItems {
		shown = sorted[:maxItems]
	}
	lines := make([]string, 0, len(shown)+1)
	for _, it := range shown {
		line := "  • " + it.Name
		if unit := costParts(it.UnitCost); unit != "" {
			line += " (" + unit + ")"
		}
		if it.Count > 1 {
			line += " x" + strconv.Itoa(it.Count) + " (" + costParts(it.TotalCost) + " total)"
		}
		lines = append(lines, line)
	}
	if len(shown) < len(sorted) {
		lines = append(lines, "  • ... and "+strconv.Itoa(len(sorted)-len(shown))+" more")
	}
	return lines
}

// Format renders the expenditure report. Without verbose each category
// lists its five most expensive items.
func Format(e *Expenditure, playerName, civ string, verbose bool) string {
	divider := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	lines := []string{
		"Resource Expenditure - " + playerName + " (" + civ + ")",
		divider,
		resourceLine("Gathered:", e.Gathered),
		resourceLine("Spent:", e.Spent),
		resourceLine("Unspent:", e.Unspent),
	}
	if e.GatherRate.Total > 0 {
		lines = append(lines, resourceLine("Rate/min:", e.GatherRate))
	}
	lines = append(lines, "", "Breakdown by Category:", thin)
	b := e.Breakdown
	for _, sec := range []struct {
		name string
		c    Category
	}{
		{"Landmarks", b.AgeUps},
		{"Buildings", b.Buildings},
		{"Military Units", b.MilitaryUnits},
		{"Villagers", b.Villagers},
		{"Upgrades", b.Upgrades},
		{"Other", b.Other},
	} {
		if sec.c.Count == 0 {
			continue
		}
		lines = append(lines, categoryHeader(sec.name, sec.c))
		lines = append(lines, categoryItems(sec.c, verbose)...)
	}

	lines = append(lines,
		thin,
		"Calculated from build order: "+num(e.Calculated().Total)+" resources",
		"Reported spent:              "+num(e.Spent.Total)+" resources",
	)
	if diff := e.Untracked(); !stats.FuzzyEqual(diff, 0) {
		lines = append(lines, "Difference:                  "+num(diff)+" (untracked spending)")
	}
	return strings.Join(lines, "\n")
}
