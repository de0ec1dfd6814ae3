package pipeline

import (
	"regexp"
	"strings"
)

// Span is a product-type hit inside cleaned item text. Offsets are byte
// positions into the searched string.
type Span struct {
	Text  string
	Start int
	End   int
}

type matchEntry struct {
	full *regexp.Regexp
	base *regexp.Regexp
}

// Matcher finds the longest configured product-type phrase inside noisy
// text. Patterns are whitespace- and hyphen-tolerant so "Luxury  Heavy
// Tee- Black" still hits "Luxury Heavy Tee - Black".
type Matcher struct {
	entries []matchEntry
}

func NewMatcher(productTypes []string) *Matcher {
	entries := make([]matchEntry, 0, len(productTypes))
	for _, name := range productTypes {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		full := compileTypePattern(name)
		base := compileTypePattern(strings.SplitN(name, " - ", 2)[0])
		if full == nil || base == nil {
			continue
		}
		entries = append(entries, matchEntry{full: full, base: base})
	}
	return &Matcher{entries: entries}
}

// Match returns the best full-name hit, falling back to base segments
// (the part before " - ") when no full name matches. Longer matched
// substrings win; ties keep the earlier configured entry because the
// comparison is strictly greater-than.
func (m *Matcher) Match(text string) (Span, bool) {
	if best, ok := m.longest(text, func(e matchEntry) *regexp.Regexp { return e.full }); ok {
		return best, true
	}
	return m.longest(text, func(e matchEntry) *regexp.Regexp { return e.base })
}

func (m *Matcher) longest(text string, pick func(matchEntry) *regexp.Regexp) (Span, bool) {
	best := Span{}
	found := false
	for _, entry := range m.entries {
		loc := pick(entry).FindStringIndex(text)
		if loc == nil {
			continue
		}
		if !found || loc[1]-loc[0] > len(best.Text) {
			best = Span{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}
			found = true
		}
	}
	return best, found
}

// compileTypePattern turns "Soft Premium Tee - Black" into a pattern
// tolerating variable spacing around words and the " - " separators.
func compileTypePattern(name string) *regexp.Regexp {
	segments := strings.Split(name, " - ")
	segPatterns := make([]string, 0, len(segments))
	for _, seg := range segments {
		words := strings.Fields(seg)
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		segPatterns = append(segPatterns, strings.Join(quoted, `\s+`))
	}
	if len(segPatterns) == 0 {
		return nil
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(segPatterns, `\s*-\s*`))
	if err != nil {
		return nil
	}
	return re
}
