package timer

import (
	"regexp"
	"strings"
)

// Pattern matches countdown strings of the form [[H:]M]M:SS, e.g. "4:59",
// "12:34" or "1:02:03". The seconds (and trailing minutes) tens digit is
// restricted to 0-5 so wall-clock style "5:75" never matches.
var Pattern = regexp.MustCompile(`\b(?:\d+:)?[0-5]?\d:[0-5]\d\b`)

// Find extracts the best timer match from text. When several candidates are
// present, the one with the most colon separators wins (a fully qualified
// H:MM:SS beats a bare M:SS); ties go to the earliest occurrence. Returns ""
// when text contains no match.
func Find(text string) string {
	if text == "" {
		return ""
	}
	matches := Pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if strings.Count(m, ":") > strings.Count(best, ":") {
			best = m
		}
	}
	return best
}
