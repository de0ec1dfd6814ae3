package pipeline

import (
	"regexp"
	"sort"
	"strings"

	"labelpress/internal"
	"labelpress/internal/tableio"
	"labelpress/internal/util"
)

const (
	matchedRowCap   = 100
	suggestionCap   = 15
	frequencyCap    = 10
	minPhraseLength = 10
)

var (
	reSizeTokens = regexp.MustCompile(`(?i)\b([SML]|[0-9]*XL|X{1,6}-?Large|Small|Medium|Large)\b`)
	reSeparators = regexp.MustCompile(`[-,]`)
	reAllDigits  = regexp.MustCompile(`^[0-9]+$`)
)

// Validate runs the same detection and parse chain as generation but
// produces a diagnostics report instead of a document, including
// suggested product-type phrases mined from the unmatched names.
func (p *Pipeline) Validate(t *tableio.Table) (internal.ValidationReport, error) {
	format, err := DetectFormat(t)
	if err != nil {
		return internal.ValidationReport{}, err
	}
	if format == internal.FormatLegacy {
		return p.validateLegacy(t)
	}
	return p.validateExtended(t)
}

func (p *Pipeline) validateLegacy(t *tableio.Table) (internal.ValidationReport, error) {
	if err := requireColumns(t, legacyRequired); err != nil {
		return internal.ValidationReport{}, err
	}

	matched := []internal.ValidationRow{}
	unmatched := []internal.ValidationRow{}
	for i := 0; i < t.Len(); i++ {
		// +2: spreadsheets are 1-indexed and carry a header row.
		row := internal.ValidationRow{
			RowNumber: i + 2,
			Product:   t.Cell(i, "Product"),
			Size:      t.Cell(i, "Size"),
			Quantity:  t.Cell(i, "Quantity"),
			ImageURL:  t.Cell(i, "Datamatrix URL"),
		}
		if row.Product != "" && row.Size != "" && row.Quantity != "" {
			matched = append(matched, row)
		} else {
			unmatched = append(unmatched, row)
		}
	}

	return internal.ValidationReport{
		Format:         internal.FormatLegacy,
		TotalRows:      t.Len(),
		MatchedCount:   len(matched),
		UnmatchedCount: len(unmatched),
		MatchedRows:    capRows(matched),
		UnmatchedRows:  unmatched,
		Suggestions:    []string{},
	}, nil
}

func (p *Pipeline) validateExtended(t *tableio.Table) (internal.ValidationReport, error) {
	if err := requireColumns(t, extendedRequired); err != nil {
		return internal.ValidationReport{}, err
	}

	matched := []internal.ValidationRow{}
	unmatched := []internal.ValidationRow{}
	unmatchedNames := []string{}
	total := 0

	for i := 0; i < t.Len(); i++ {
		sku := t.Cell(i, "Item - SKU")
		if strings.TrimSpace(sku) == "" {
			continue
		}
		total++

		itemName := t.Cell(i, "Item - Name")
		row := internal.ValidationRow{
			RowNumber:   i + 2,
			ItemName:    itemName,
			OrderNumber: t.Cell(i, "Order - Number"),
			SKU:         sku,
		}

		if item, ok := p.ParseItem(itemName); ok {
			row.MatchedProductType = item.ProductType
			row.Size = item.Size
			row.Title = item.Title
			matched = append(matched, row)
		} else {
			unmatched = append(unmatched, row)
			unmatchedNames = append(unmatchedNames, StripTags(itemName))
		}
	}

	if total == 0 {
		return internal.ValidationReport{}, ErrEmptyInput
	}

	return internal.ValidationReport{
		Format:         internal.FormatExtended,
		TotalRows:      total,
		MatchedCount:   len(matched),
		UnmatchedCount: len(unmatched),
		MatchedRows:    capRows(matched),
		UnmatchedRows:  unmatched,
		Suggestions:    SuggestProductTypes(unmatchedNames),
	}, nil
}

// SuggestProductTypes mines candidate product-type phrases from names no
// configured type matched: multi-word fragments that recur across names
// (or the only fragment, when a single name failed), plus each name's
// leading phrase when it is long enough.
func SuggestProductTypes(unmatchedNames []string) []string {
	if len(unmatchedNames) == 0 {
		return []string{}
	}

	phraseCounts := map[string]int{}
	for _, name := range unmatchedNames {
		cleaned := reSizeTokens.ReplaceAllString(name, "")
		parts := reSeparators.Split(cleaned, -1)
		if len(parts) > 3 {
			parts = parts[:3]
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if len(part) <= 3 || reAllDigits.MatchString(part) {
				continue
			}
			normalized := util.CollapseSpaces(part)
			if normalized != "" {
				phraseCounts[normalized]++
			}
		}
	}

	type counted struct {
		phrase string
		count  int
	}
	ranked := make([]counted, 0, len(phraseCounts))
	for phrase, count := range phraseCounts {
		ranked = append(ranked, counted{phrase, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].phrase < ranked[j].phrase
	})

	suggestions := []string{}
	for _, c := range ranked {
		if c.count > 1 || (c.count == 1 && len(unmatchedNames) == 1) {
			suggestions = append(suggestions, c.phrase)
		}
		if len(suggestions) >= frequencyCap {
			break
		}
	}

	// Secondary heuristic: the leading 2-4 word phrase of each name,
	// kept when it is substantial.
	for _, name := range unmatchedNames {
		words := strings.Fields(name)
		for i := 0; i < 4 && i < len(words); i++ {
			end := i + 2
			if end > len(words) {
				end = len(words)
			}
			phrase := strings.TrimSpace(strings.Join(words[:end], " "))
			if len(phrase) > minPhraseLength {
				suggestions = append(suggestions, phrase)
				break
			}
		}
	}

	return dedupe(suggestions, suggestionCap)
}

func dedupe(values []string, limit int) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func capRows(rows []internal.ValidationRow) []internal.ValidationRow {
	if len(rows) > matchedRowCap {
		return rows[:matchedRowCap]
	}
	return rows
}
