package parser

import (
	"regexp"
	"strings"
)

// imageFormulaPattern matches the =IMAGE("...") wrapper Sheets leaves in
// exported cells. Case-insensitive, whitespace-tolerant; extra arguments
// after the URL are ignored. This is pure text matching, nothing is
// evaluated.
var imageFormulaPattern = regexp.MustCompile(`(?i)^=?\s*IMAGE\s*\(\s*"([^"]+)"`)

// ExtractImageURL pulls a usable image URL out of a cell: either the quoted
// argument of an IMAGE() wrapper or a bare http(s) URL. Anything else yields
// the empty string.
func ExtractImageURL(cell string) string {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	if m := imageFormulaPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return ""
}
