package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/manifest"
)

const baseURL = "https://x.test/"

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		Root:       t.TempDir(),
		BaseURL:    baseURL,
		ContentDir: "public",
		Log:        zap.NewNop().Sugar(),
	}
}

func TestBuildGroupsAndSorts(t *testing.T) {
	b := newBuilder(t)
	m := manifest.Manifest{
		{ID: "zeta", Title: "Zeta Notes", RedirectHTMLPath: "public/decks/zeta.html",
			CurrentTargetFile: baseURL + "public/decks/zeta.md", PublicURL: baseURL + "public/decks/zeta.html",
			LastUpdatedAt: "2024-01-02T03:04:05Z"},
		{ID: "alpha", Title: "Alpha Notes", RedirectHTMLPath: "public/decks/alpha.html",
			CurrentTargetFile: baseURL + "public/decks/alpha.md", PublicURL: baseURL + "public/decks/alpha.html",
			LastUpdatedAt: "2024-01-02T03:04:05Z"},
		{ID: "top", Title: "Top Level", RedirectHTMLPath: "public/top.html",
			CurrentTargetFile: baseURL + "public/top.md", PublicURL: baseURL + "public/top.html",
			LastUpdatedAt: "2024-01-02T03:04:05Z"},
	}

	got := b.Build(m)

	assert.Contains(t, got, "## decks\n")
	assert.Contains(t, got, "## General\n")
	// Groups sorted: General before decks... markdown headings appear in
	// lexical order, and within a group rows sort by title.
	assert.Less(t, strings.Index(got, "## General"), strings.Index(got, "## decks"))
	assert.Less(t, strings.Index(got, "Alpha Notes"), strings.Index(got, "Zeta Notes"))
	assert.Contains(t, got, "[alpha]("+baseURL+"public/decks/alpha.html)")
	assert.Contains(t, got, "2024-01-02T03:04:05Z")
}

func TestBuildDeterministic(t *testing.T) {
	b := newBuilder(t)
	m := manifest.Manifest{
		{ID: "a", Title: "A", RedirectHTMLPath: "public/a.html", CurrentTargetFile: baseURL + "public/a.md"},
		{ID: "b", Title: "B", RedirectHTMLPath: "public/b.html", CurrentTargetFile: baseURL + "public/b.md"},
	}
	assert.Equal(t, b.Build(m), b.Build(m))
}

func TestBuildEscapesPipes(t *testing.T) {
	b := newBuilder(t)
	m := manifest.Manifest{
		{ID: "odd", Title: "A | B", RedirectHTMLPath: "public/odd.html", CurrentTargetFile: baseURL + "public/odd.md"},
	}
	assert.Contains(t, b.Build(m), `A \| B`)
}

func TestBuildUnreadablePDFIsNotFatal(t *testing.T) {
	b := newBuilder(t)
	// Target claims to be a PDF but does not exist on disk; the page-count
	// decoration is skipped, the row still renders.
	m := manifest.Manifest{
		{ID: "deck", Title: "Deck", RedirectHTMLPath: "public/deck.html",
			CurrentTargetFile: baseURL + "public/deck.pdf"},
	}
	got := b.Build(m)
	assert.Contains(t, got, "| Deck |")
}

func TestWriteOnlyWhenChanged(t *testing.T) {
	log := zap.NewNop().Sugar()
	path := filepath.Join(t.TempDir(), "REDIRECTS.md")

	changed, err := Write(path, "# Redirect index\n", false, log)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = Write(path, "# Redirect index\n", false, log)
	require.NoError(t, err)
	assert.False(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Redirect index\n", string(data))
}
