package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"labelpress/internal/util"
)

// Size alternations are ordered longest-first on purpose: "2XL" must be
// consumed whole, never as a bare "XL" with a stray "2" left in the
// title. Do not reorder. The trailing \b rejects letter tails ("XLT")
// and digit tails ("XL2") alike; digit-glued tokens never denote a size
// in marketplace feeds.
const sizeCore = `[0-9]+X-Large|[0-9]+XL|XL\b|X{1,6}-?Large|Small|Medium|Large|[SML]\b`

var (
	// Compact size/color grammar for the text right after a product type.
	// When the tail is nothing but this, the name is title-then-type even
	// if the type sits before the midpoint.
	reAfterType = regexp.MustCompile(`(?i)^(` + sizeCore + `|Orange\s+Camo|Black/White|Black/Black|White/Black|Red|Pepper)(\s+(Camo|Black|White))?$`)

	reSizeAfter   = regexp.MustCompile(`(?i)^(` + sizeCore + `|Orange\s+Camo|Black/White|Black/Black|White/Black)\b`)
	reColorToken  = regexp.MustCompile(`(?i)^(Orange\s+Camo|Black/White|Black/Black|White/Black)`)
	reColorSize   = regexp.MustCompile(`(?i)-\s*(Black|White|Vintage Black|Stone Wash|Pepper)[-,/]\s*(` + sizeCore + `)\s*[-,/]`)
	reLooseSize   = regexp.MustCompile(`(?i)[-,/]\s*(` + sizeCore + `)\s*([-,/]|$)`)
	reTitleAfter  = regexp.MustCompile(`(?i)[-,/]\s*(` + sizeCore + `)\s*[-,/]\s*(.*)$`)
	reColorsOnly  = regexp.MustCompile(`(?i)^(black|white|red|blue|green|yellow|orange|purple|grey|gray|navy|pink|brown|tan|beige|gold|silver)(\s*/\s*(black|white|red|blue|green|yellow|orange|purple|grey|gray|navy|pink|brown|tan|beige|gold|silver))*$`)
)

// ParsedName is the raw parse result before shortening.
type ParsedName struct {
	Title       string
	ProductType string
	Size        string
	// Clean is the tag-stripped source text; the shortening rules run
	// their contains-conditions against it.
	Clean string
}

// Parser splits a markup-bearing item name into title, product type and
// size using positional heuristics around the matched product type.
type Parser struct {
	matcher *Matcher
}

func NewParser(productTypes []string) *Parser {
	return &Parser{matcher: NewMatcher(productTypes)}
}

// Parse returns false when the name is empty or no configured product
// type occurs in it; such rows are unparseable and the caller drops or
// reports them.
func (p *Parser) Parse(raw string) (ParsedName, bool) {
	if strings.TrimSpace(raw) == "" {
		return ParsedName{}, false
	}
	clean := StripTags(raw)

	span, ok := p.matcher.Match(clean)
	if !ok {
		return ParsedName{}, false
	}

	remaining := strings.Trim(clean[span.End:], " -,/")

	// The type is "at the end" when it starts past the midpoint, or when
	// nothing but a size/color tail follows it.
	atEnd := float64(span.Start) > float64(len(clean))*0.5 || reAfterType.MatchString(remaining)

	var title, size string
	if atEnd {
		// Title - Product Type - Size/Color
		title = strings.Trim(clean[:span.Start], " -,/")
		if remaining != "" {
			if m := reSizeAfter.FindStringSubmatch(remaining); m != nil {
				// Color compounds share the grammar but are not sizes.
				if !reColorToken.MatchString(m[1]) {
					size = NormalizeSize(m[1])
				}
			}
		}
	} else {
		// Product Type - Color - Size - Title
		if m := reColorSize.FindStringSubmatch(clean); m != nil {
			size = NormalizeSize(m[2])
		} else if m := reLooseSize.FindStringSubmatch(clean); m != nil {
			size = NormalizeSize(m[1])
		}

		if m := reTitleAfter.FindStringSubmatch(clean); m != nil {
			title = strings.TrimSpace(m[2])
		} else if idx := lastSeparator(clean); idx > 0 {
			title = strings.TrimSpace(clean[idx+2:])
		} else {
			title = clean
		}

		// A title that is empty or nothing but color words means the real
		// title sits before the product type instead.
		if trimmed := strings.TrimSpace(title); trimmed == "" || reColorsOnly.MatchString(trimmed) {
			title = titleBeforeType(clean, span)
		}
	}

	if strings.TrimSpace(title) == "" {
		if atEnd {
			title = strings.Trim(clean[:span.Start], " -,")
		} else {
			title = clean
		}
	}

	// Tag stripping can leave doubled whitespace behind.
	return ParsedName{Title: util.CollapseSpaces(title), ProductType: span.Text, Size: size, Clean: clean}, true
}

// StripTags removes markup from marketplace item names. Input is treated
// as an HTML fragment; entities are decoded along the way.
func StripTags(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return doc.Text()
}

func lastSeparator(s string) int {
	idx := strings.LastIndex(s, " - ")
	if comma := strings.LastIndex(s, ", "); comma > idx {
		idx = comma
	}
	return idx
}

func titleBeforeType(clean string, span Span) string {
	if span.Start > 0 {
		return strings.Trim(clean[:span.Start], " -,")
	}
	return clean
}
