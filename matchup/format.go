package matchup

import (
	"fmt"
	"strings"
)

func favoredLabel(s Side, p1, p2 string) string {
	switch s {
	case Army1:
		return p1
	case Army2:
		return p2
	default:
		return "Even"
	}
}

// FormatValueAdjusted renders a value-adjusted comparison. Every number is
// printed with two decimals.
func FormatValueAdjusted(m *ValueAdjustedMatchup, p1, p2 string) string {
	var sb strings.Builder

	sb.WriteString("Raw Values:\n")
	fmt.Fprintf(&sb, "  %s: %.2f\n", p1, m.Army1RawValue)
	fmt.Fprintf(&sb, "  %s: %.2f\n", p2, m.Army2RawValue)
	sb.WriteString("\nAdjusted Values:\n")
	fmt.Fprintf(&sb, "  %s: %.2f\n", p1, m.Army1AdjustedValue)
	fmt.Fprintf(&sb, "  %s: %.2f\n", p2, m.Army2AdjustedValue)

	sb.WriteString("\nFavored: " + favoredLabel(m.Favored, p1, p2))
	if m.Favored != Neither {
		fmt.Fprintf(&sb, " (+%.2f%% adjusted edge)", m.AdvantagePercent*100)
	}
	sb.WriteString("\nExplanation: " + m.Explanation + "\n")

	sb.WriteString("\nKey Matchups:\n")
	for _, d := range m.KeyMatchups {
		fmt.Fprintf(&sb, "  - %s (%s) vs %s (%s): %.2fx -> %.2f (%s) [impact: %s]\n",
			d.AttackerName, d.AttackerClass, d.DefenderName, d.DefenderClass,
			d.Multiplier, d.ValueAfterCounter, d.Narrative, d.Impact)
	}

	writeBreakdown(&sb, "Army 1 Breakdown:", m.Army1Breakdown)
	writeBreakdown(&sb, "Army 2 Breakdown:", m.Army2Breakdown)
	return strings.TrimSuffix(sb.String(), "\n")
}

func writeBreakdown(sb *strings.Builder, title string, rows []UnitAdjustedSummary) {
	sb.WriteString("\n" + title + "\n")
	for _, r := range rows {
		fmt.Fprintf(sb, "  - %s: raw %.2f -> adjusted %.2f\n", r.UnitName, r.RawTotal, r.AdjustedTotal)
	}
}

// FormatMatchupAnalysis renders a count-based comparison.
func FormatMatchupAnalysis(a *MatchupAnalysis, p1, p2 string) string {
	var sb strings.Builder
	sb.WriteString("Favored: " + favoredLabel(a.Favored, p1, p2))
	if a.Favored != Neither {
		fmt.Fprintf(&sb, " (+%.2f%% of combined score)", a.AdvantagePercent*100)
	}
	fmt.Fprintf(&sb, "\nScore difference: %.2f\n", a.Score)
	sb.WriteString("\nKey Matchups:\n")
	if len(a.KeyMatchups) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, m := range a.KeyMatchups {
		sign := ""
		if m.Impact >= 0 {
			sign = "+"
		}
		fmt.Fprintf(&sb, "  - %s vs %s: %.2fx (weighted impact %s%.2f)\n",
			m.Attacker, m.Defender, m.Effectiveness, sign, m.Impact)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
