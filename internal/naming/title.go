package naming

import (
	"regexp"
	"strings"
)

var (
	reHyphenSep  = regexp.MustCompile(`\s*-\s*`)
	reNonSlug    = regexp.MustCompile(`[^\w\s-]`)
	reSlugJoiner = regexp.MustCompile(`[\s_-]+`)
)

// CleanTitle turns a raw filename into a human-readable title: the
// extension and date tokens are stripped, underscores become spaces,
// hyphen separators are normalized to " - ", and whitespace is collapsed.
// Idempotent: cleaning an already-clean title is a no-op.
func CleanTitle(filename string) string {
	s := stem(filename)
	s = StripDateTokens(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = reHyphenSep.ReplaceAllString(s, " - ")
	s = reSpaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Slugify converts text to a URL-safe slug: lowercase, word characters and
// hyphens only, separator runs collapsed to single hyphens. Idempotent.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = reNonSlug.ReplaceAllString(s, "")
	s = reSlugJoiner.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stem returns the filename without its final extension.
func stem(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i]
	}
	return filename
}
