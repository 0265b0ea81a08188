package parse

import (
	"regexp"
	"strings"
)

// Numbering prefix patterns, matched at the start of a trimmed title. The
// CJK class mirrors the ordinal tokens the numbering engine can emit.
var numberingPrefixes = []*regexp.Regexp{
	// Dotted arabic: "1. ", "1.2.1. ", "3 "
	regexp.MustCompile(`^\d+(\.\d+)*\.?\s*`),
	// CJK ordinal groups, each closed by 、: "一、", "一、二、"
	regexp.MustCompile(`^[一二三四五六七八九十百千万]+、(\s*[一二三四五六七八九十百千万]+、)*\s*`),
	// Mixed: CJK group followed by a dotted arabic group: "一、1.2. "
	regexp.MustCompile(`^[一二三四五六七八九十百千万]+、\s*\d+(\.\d+)*\.?\s*`),
}

// CleanTitle strips any generated numbering prefix from a heading title.
// It keeps stripping until no pattern matches, so a title that went through
// several rounds of re-numbering under different policies still comes out
// fully clean. Idempotent: CleanTitle(CleanTitle(s)) == CleanTitle(s).
func CleanTitle(title string) string {
	s := strings.TrimSpace(title)
	for {
		stripped := false
		for _, re := range numberingPrefixes {
			if loc := re.FindStringIndex(s); loc != nil && loc[1] > 0 {
				s = strings.TrimSpace(s[loc[1]:])
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}
