package util

import (
	"strconv"
	"strings"
)

// CoerceQuantity turns a spreadsheet cell into a positive item count.
// Cells arrive as "3", "3.0" or with stray spaces depending on the
// exporter. ok is false for empty, non-numeric or non-positive input.
func CoerceQuantity(cell string) (int, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	qty := int(parsed)
	if qty <= 0 {
		return 0, false
	}
	return qty, true
}
