package pipeline

import "strings"

// sizeLadder is the physical garment-size order used for picking.
var sizeLadder = []string{"S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL", "6XL"}

// unknownSizeRank sorts unrecognized sizes after every known one.
const unknownSizeRank = 999

var sizeAliases = map[string]string{
	"SMALL":         "S",
	"MEDIUM":        "M",
	"LARGE":         "L",
	"X-LARGE":       "XL",
	"XX-LARGE":      "2XL",
	"XXX-LARGE":     "3XL",
	"XXXX-LARGE":    "4XL",
	"XXXXX-LARGE":   "5XL",
	"XXXXXX-LARGE":  "6XL",
	"2X-LARGE":      "2XL",
	"3X-LARGE":      "3XL",
	"4X-LARGE":      "4XL",
	"5X-LARGE":      "5XL",
	"6X-LARGE":      "6XL",
}

var sizeRanks = func() map[string]int {
	m := make(map[string]int, len(sizeLadder))
	for i, s := range sizeLadder {
		m[s] = i
	}
	return m
}()

// NormalizeSize maps spelled-out or hyphenated size tokens to the
// canonical ladder form. Unrecognized tokens pass through upper-cased,
// assumed already canonical; there is no error path.
func NormalizeSize(token string) string {
	if token == "" {
		return ""
	}
	upper := strings.ToUpper(strings.TrimSpace(token))
	if mapped, ok := sizeAliases[upper]; ok {
		return mapped
	}
	return upper
}

// SizeRank returns the position of a canonical size on the ladder.
func SizeRank(canonical string) int {
	if rank, ok := sizeRanks[canonical]; ok {
		return rank
	}
	return unknownSizeRank
}
