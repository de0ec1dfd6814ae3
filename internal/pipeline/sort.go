package pipeline

import (
	"sort"

	"labelpress/internal"
)

// SortRows orders rows for picking: configured rule priority first, then
// condition order within the rule, then garment size up the ladder.
// The sort is stable so equal keys keep their input order.
func SortRows(rows []internal.NormalizedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.RuleIndex != b.RuleIndex {
			return a.RuleIndex < b.RuleIndex
		}
		if a.ConditionIndex != b.ConditionIndex {
			return a.ConditionIndex < b.ConditionIndex
		}
		return SizeRank(a.Size) < SizeRank(b.Size)
	})
}
