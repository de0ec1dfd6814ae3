package pipeline

import (
	"strings"

	"labelpress/internal"
	"labelpress/internal/settings"
)

// Shortener rewrites a matched product type into its display form via
// the ordered rule table, recording which rule and condition fired so
// the sorter can group by configured priority.
type Shortener struct {
	rules []settings.Rule
}

func NewShortener(rules []settings.Rule) *Shortener {
	return &Shortener{rules: rules}
}

// Apply walks the rules in order and stops at the first one whose
// pattern is a case-insensitive substring of the product type. Within
// that rule, conditions fire in order: a default always fires, a
// contains-condition fires when its text occurs in the full cleaned item
// text (context words outside the type disambiguate). If the claiming
// rule has no firing condition the search still ends there. Later rules
// are NOT tried; the type stays unshortened with sentinel provenance.
func (s *Shortener) Apply(productType, fullText string) (string, int, int) {
	if productType == "" {
		return productType, internal.UnmatchedIndex, internal.UnmatchedIndex
	}

	typeUpper := strings.ToUpper(productType)
	searchText := typeUpper
	if fullText != "" {
		searchText = strings.ToUpper(fullText)
	}

	for ruleIdx, rule := range s.rules {
		pattern := strings.ToUpper(rule.Pattern)
		if pattern == "" || !strings.Contains(typeUpper, pattern) {
			continue
		}

		for condIdx, cond := range rule.Conditions {
			if cond.Default {
				return cond.Result, ruleIdx, condIdx
			}
			if strings.Contains(searchText, strings.ToUpper(cond.Contains)) {
				return cond.Result, ruleIdx, condIdx
			}
		}

		// Pattern claimed the type but nothing fired: short-circuit.
		break
	}

	return productType, internal.UnmatchedIndex, internal.UnmatchedIndex
}
