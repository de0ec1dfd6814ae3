package pipeline

import (
	"labelpress/internal"
	"labelpress/internal/tableio"
)

// Column signatures of the two supported schemas. The extended schema is
// the marketplace order export; the legacy one is the original hand-made
// sheet.
var (
	extendedColumns = []string{
		"Order - Number",
		"Item - SKU",
		"Item - Name",
		"Item - Qty",
		"Item - Image URL",
		"Market - Store Name",
		"Date - Ship By Date",
	}
	legacyColumns = []string{"Product", "Size", "Quantity", "Datamatrix URL"}
)

// DetectFormat classifies a table by counting signature-column overlap.
// Extended wins at 5 of 7, legacy at 3 of 4; anything below both bars is
// unrecognized and nothing is generated.
func DetectFormat(t *tableio.Table) (internal.Format, error) {
	extendedScore := 0
	for _, col := range extendedColumns {
		if t.Has(col) {
			extendedScore++
		}
	}
	legacyScore := 0
	for _, col := range legacyColumns {
		if t.Has(col) {
			legacyScore++
		}
	}

	switch {
	case extendedScore >= 5:
		return internal.FormatExtended, nil
	case legacyScore >= 3:
		return internal.FormatLegacy, nil
	default:
		return "", ErrFormatUnrecognized
	}
}
