package naming

import (
	"regexp"
	"strings"
)

// Building blocks for the date rules. A month is a full or abbreviated
// English name; a year is four digits or an apostrophe form ('23); a day
// may carry an ordinal suffix. Each rule optionally consumes a leading
// separator or opening parenthesis and a trailing closing parenthesis.
const (
	monthPat = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec` +
		`|January|February|March|April|June|July|August|September|October|November|December)`
	yearPat = `(?:\d{4}|'\d{2})`
	dayPat  = `\d{1,2}(?:st|nd|rd|th)?`
	leadPat = `(?:[\s_-]|\s*\(\s*)?`
	tailPat = `\b(?:\s*\))?`
)

// dateRules are tried in order, most specific first, and every rule is
// applied to the whole string (all occurrences). Order matters: the bare
// year rule would otherwise eat the year out of "Oct 2023" and leave the
// month behind.
var dateRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)` + leadPat + monthPat + `\s+` + yearPat + tailPat),
	regexp.MustCompile(`(?i)` + leadPat + `\d{4}-\d{2}(?:-\d{2})?` + tailPat),
	regexp.MustCompile(`(?i)` + leadPat + `\d{8}` + tailPat),
	regexp.MustCompile(`(?i)` + leadPat + dayPat + `\s+` + monthPat + `\s+` + yearPat + tailPat),
	regexp.MustCompile(`(?i)` + leadPat + monthPat + `\s+` + dayPat + `,?\s+` + yearPat + tailPat),
	regexp.MustCompile(`(?i)` + leadPat + yearPat + tailPat),
}

var (
	reSepRuns   = regexp.MustCompile(`[\s_]+`)
	reSpaceRuns = regexp.MustCompile(`\s+`)
)

// StripDateTokens removes date tokens from s and tidies the leftovers:
// runs of whitespace/underscores collapse to a single space, and stray
// separators are trimmed from both ends. Interior hyphens survive so that
// [CleanTitle] can normalize them.
func StripDateTokens(s string) string {
	for _, re := range dateRules {
		s = strings.TrimSpace(re.ReplaceAllString(s, ""))
	}
	s = reSepRuns.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -_")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
