package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// FormatShipDate shortens marketplace timestamps like
// "9/26/2025 10:46:54 PM" to "9/26/25". Anything it cannot pick apart is
// cut to its first ten characters.
func FormatShipDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") && (strings.Contains(s, ":") || strings.Contains(s, "AM") || strings.Contains(s, "PM")) {
		datePart := strings.Fields(s)[0]
		parts := strings.Split(datePart, "/")
		if len(parts) == 3 {
			year := parts[2]
			if len(year) == 4 {
				year = year[2:]
			}
			return parts[0] + "/" + parts[1] + "/" + year
		}
	}

	if len(s) > 10 {
		return s[:10]
	}
	return s
}
