package naming

import (
	"path"
	"strings"
)

// Inferred bundles the values derived from a discovered file. They seed a
// fresh manifest entry; a matched entry keeps its (possibly hand-edited)
// values instead.
type Inferred struct {
	ID               string // slug of the date-stripped stem
	Title            string // human-readable title
	RedirectHTMLPath string // sibling <slug>.html, forward slashes
}

// Infer derives id, title, and redirect-page path for a content file.
// relPath is the file's path relative to the workspace root, using forward
// slashes (e.g. "public/decks/Security Deep Dive - Oct 2023.pdf").
func Infer(relPath string) Inferred {
	dir, filename := path.Split(relPath)

	base := StripDateTokens(stem(filename))
	slug := Slugify(strings.ReplaceAll(base, "_", " "))

	return Inferred{
		ID:               slug,
		Title:            CleanTitle(filename),
		RedirectHTMLPath: path.Join(strings.TrimSuffix(dir, "/"), slug+".html"),
	}
}
