package pipeline

import "labelpress/internal"

// AssignBins gives each multi-item order a physical sorting slot. Rows
// must already be in final (sorted) order: bins are numbered by an
// order's first appearance in that sequence so bin numbers match the
// printed picking walk. Once maxBins is used up every further multi-item
// order shares the overflow label. Single-item orders get no bin.
//
// It also stamps each row with its 1-based position within its order and
// the order's total item count for the "K of N" annotation.
func AssignBins(rows []internal.NormalizedRow, maxBins int, overflowName string) {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.OrderNumber]++
	}

	binNumbers := make(map[string]int)
	overflow := make(map[string]bool)
	binCounter := 1

	positions := make(map[string]int, len(counts))
	for i := range rows {
		order := rows[i].OrderNumber
		rows[i].OrderItems = counts[order]
		positions[order]++
		rows[i].ItemIndex = positions[order]

		if counts[order] <= 1 {
			continue
		}

		if _, seen := binNumbers[order]; !seen && !overflow[order] {
			if binCounter <= maxBins {
				binNumbers[order] = binCounter
			} else {
				overflow[order] = true
			}
			binCounter++
		}
		if overflow[order] {
			rows[i].BinOverflow = overflowName
		} else {
			rows[i].BinNumber = binNumbers[order]
		}
	}
}
