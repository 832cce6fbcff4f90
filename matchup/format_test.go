package matchup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValueAdjusted(t *testing.T) {
	m := CompareValueAdjusted([]UnitWithValue{spearmen(3)}, []UnitWithValue{knights(1)})
	out := FormatValueAdjusted(m, "Alice", "Bob")

	expected := `Raw Values:
  Alice: 240.00
  Bob: 240.00

Adjusted Values:
  Alice: 360.00
  Bob: 160.80

Favored: Alice (+123.88% adjusted edge)
Explanation: Raw value lead is reinforced by Spearman exploits Knight (1.50x)

Key Matchups:
  - Spearman (spearman) vs Knight (heavy_melee_cavalry): 1.50x -> 360.00 (Spearman exploits Knight (1.50x)) [impact: high]
  - Knight (heavy_melee_cavalry) vs Spearman (spearman): 0.67x -> 160.80 (Knight is punished by Spearman (0.67x)) [impact: high]

Army 1 Breakdown:
  - Spearman: raw 240.00 -> adjusted 360.00

Army 2 Breakdown:
  - Knight: raw 240.00 -> adjusted 160.80`
	assert.Equal(t, expected, out)
}

func TestFormatValueAdjustedEven(t *testing.T) {
	out := FormatValueAdjusted(&ValueAdjustedMatchup{
		Explanation: "Direct engagement is roughly even after adjusting for counters and value.",
	}, "Alice", "Bob")
	assert.Contains(t, out, "\nFavored: Even\n")
	assert.NotContains(t, out, "adjusted edge")
	assert.True(t, strings.HasSuffix(out, "Army 2 Breakdown:"))
}

func TestFormatMatchupAnalysis(t *testing.T) {
	a := AnalyzeArmyMatchup(
		[]UnitCount{{UnitID: "spearman", Count: 3, EffectiveValue: 80}},
		[]UnitCount{{UnitID: "knight", Count: 1, EffectiveValue: 240}},
		lookup,
	)
	expected := `Favored: Alice (+38.25% of combined score)
Score difference: 199.20

Key Matchups:
  - spearman vs knight: 1.50x (weighted impact +120.00)`
	assert.Equal(t, expected, FormatMatchupAnalysis(a, "Alice", "Bob"))

	even := FormatMatchupAnalysis(&MatchupAnalysis{}, "Alice", "Bob")
	assert.Equal(t, "Favored: Even\nScore difference: 0.00\n\nKey Matchups:\n  (none)", even)
}
