package pipeline

import (
	"fmt"
	"strings"

	"labelpress/internal"
	"labelpress/internal/settings"
	"labelpress/internal/tableio"
	"labelpress/internal/util"
)

// Columns that must carry data per schema. The extended signature used
// for detection is wider; generation only needs these.
var (
	legacyRequired   = legacyColumns
	extendedRequired = []string{"Item - Name", "Item - Qty", "Item - Image URL"}
)

// Pipeline turns a loaded table into normalized, parse-enriched rows.
// It holds an immutable settings snapshot for the duration of one run.
type Pipeline struct {
	cfg       settings.Settings
	parser    *Parser
	shortener *Shortener
}

func New(cfg settings.Settings) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		parser:    NewParser(cfg.ProductTypes),
		shortener: NewShortener(cfg.ShorteningRules),
	}
}

func (p *Pipeline) Settings() settings.Settings {
	return p.cfg
}

// ParseItem runs the full parse-and-shorten chain on one item name.
func (p *Pipeline) ParseItem(rawName string) (internal.ParsedItem, bool) {
	name, ok := p.parser.Parse(rawName)
	if !ok {
		return internal.ParsedItem{}, false
	}
	display, ruleIdx, condIdx := p.shortener.Apply(name.ProductType, name.Clean)
	return internal.ParsedItem{
		Title:               name.Title,
		ProductType:         display,
		Size:                name.Size,
		RuleIndex:           ruleIdx,
		ConditionIndex:      condIdx,
		OriginalProductType: name.ProductType,
	}, true
}

// BuildRows detects the schema and produces the normalized row set.
// Unusable rows (no SKU, unparseable name, incomplete legacy fields) are
// dropped here; the validation path reports them instead.
func (p *Pipeline) BuildRows(t *tableio.Table) ([]internal.NormalizedRow, internal.Format, error) {
	format, err := DetectFormat(t)
	if err != nil {
		return nil, "", err
	}

	var rows []internal.NormalizedRow
	switch format {
	case internal.FormatLegacy:
		rows, err = p.buildLegacy(t)
	case internal.FormatExtended:
		rows, err = p.buildExtended(t)
	}
	if err != nil {
		return nil, format, err
	}
	if len(rows) == 0 {
		return nil, format, ErrEmptyInput
	}
	return rows, format, nil
}

func (p *Pipeline) buildLegacy(t *tableio.Table) ([]internal.NormalizedRow, error) {
	if err := requireColumns(t, legacyRequired); err != nil {
		return nil, err
	}

	out := make([]internal.NormalizedRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		product := t.Cell(i, "Product")
		size := t.Cell(i, "Size")
		qty, ok := util.CoerceQuantity(t.Cell(i, "Quantity"))
		if product == "" || size == "" || !ok {
			continue
		}
		// A missing code URL still yields a label; its code zone is left
		// blank at render time.

		out = append(out, internal.NormalizedRow{
			ParsedItem: internal.ParsedItem{
				Title:          product,
				Size:           NormalizeSize(size),
				RuleIndex:      internal.UnmatchedIndex,
				ConditionIndex: internal.UnmatchedIndex,
			},
			Quantity: qty,
			ImageURL: t.Cell(i, "Datamatrix URL"),
		})
	}
	return out, nil
}

func (p *Pipeline) buildExtended(t *tableio.Table) ([]internal.NormalizedRow, error) {
	if err := requireColumns(t, extendedRequired); err != nil {
		return nil, err
	}

	out := make([]internal.NormalizedRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		// Rows without a SKU are promotional inserts, not physical items.
		sku := t.Cell(i, "Item - SKU")
		if strings.TrimSpace(sku) == "" {
			continue
		}

		item, ok := p.ParseItem(t.Cell(i, "Item - Name"))
		if !ok {
			continue
		}

		qty, ok := util.CoerceQuantity(t.Cell(i, "Item - Qty"))
		if !ok {
			qty = 1
		}

		out = append(out, internal.NormalizedRow{
			ParsedItem:  item,
			OrderNumber: t.Cell(i, "Order - Number"),
			SKU:         sku,
			StoreName:   t.Cell(i, "Market - Store Name"),
			ShipDate:    util.FormatShipDate(t.Cell(i, "Date - Ship By Date")),
			Quantity:    qty,
			ImageURL:    t.Cell(i, "Item - Image URL"),
		})
	}
	return out, nil
}

func requireColumns(t *tableio.Table, required []string) error {
	missing := []string{}
	for _, col := range required {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}
