package rank

import (
	"fmt"
	"strconv"
	"strings"
)

// TierUnranked is the tier of any player with a zero global score,
// regardless of other fields.
const TierUnranked = "Unranked"

// band is one threshold rung: scores at or below Upper classify as Name.
// The policy is data so the bands can be tested in isolation.
type band struct {
	Upper float64
	Name  string
}

// tierBands is evaluated top-down, first match wins; upper bounds are
// inclusive (a score of exactly 50 is still Rookie). The zero-score and
// top-bracket cases are handled outside the table.
var tierBands = []band{
	{50, "Rookie"},
	{100, "Tier-1a"},
	{150, "Tier-1b"},
	{250, "Tier-1c"},
	{400, "Tier-2a"},
	{600, "Tier-2b"},
	{900, "Tier-2c"},
	{1200, "Tier-3a"},
	{1600, "Tier-3b"},
	{2100, "Tier-3c"},
	{2600, "Tier-4a"},
	{3300, "Tier-4b"},
	{4000, "Tier-4c"},
}

const (
	apexCutoff = 10
	apexScore  = 4000
)

// Classify maps a global score to its tier name. Rank only matters in the
// top bracket: a score of 4000+ held by a top-10 player is named "Apex #n",
// anyone else at 4000+ stays Tier-4c.
func Classify(score float64, rank int) string {
	if score == 0 {
		return TierUnranked
	}
	if score >= apexScore && rank >= 1 && rank <= apexCutoff {
		return fmt.Sprintf("Apex #%d", rank)
	}
	for _, b := range tierBands {
		if score <= b.Upper {
			return b.Name
		}
	}
	return "Tier-4c"
}

// HierarchyValue maps a tier name back to its numeric rung, used only for
// ordering. Parsing is case-insensitive and tolerant of optional internal
// spacing ("Tier-3b", "Tier 3b" and "tier3b" are the same rung). Apex tiers
// sit above every band and are split by their numeric suffix: a lower suffix
// outranks a higher one. Unknown names rank as Unranked.
func HierarchyValue(name string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")

	if suffix, ok := strings.CutPrefix(n, "apex"); ok {
		suffix = strings.TrimPrefix(suffix, "#")
		if v, err := strconv.Atoi(suffix); err == nil && v >= 1 && v <= apexCutoff {
			return apexBase + (apexCutoff - v)
		}
		return apexBase
	}

	if n == "unranked" {
		return 0
	}
	for i, b := range tierBands {
		if strings.ReplaceAll(strings.ToLower(b.Name), "-", "") == n {
			return i + 1
		}
	}
	return 0
}

// apexBase sits just above the last band rung (Tier-4c == len(tierBands)).
var apexBase = len(tierBands) + 1
