package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "redirects.json"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	m, err := Load(path)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Empty(t, m)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirects.json")
	m := Manifest{
		{ID: "zeta", Title: "Zeta", RedirectHTMLPath: "public/zeta.html", CurrentTargetFile: "https://example.test/zeta.pdf"},
		{ID: "Alpha", Title: "Alpha", RedirectHTMLPath: "public/alpha.html", CurrentTargetFile: "https://example.test/alpha.pdf", FileSHA: "abc"},
	}
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Sorted by lowercased id on save.
	assert.Equal(t, "Alpha", got[0].ID)
	assert.Equal(t, "zeta", got[1].ID)
	assert.Equal(t, "abc", got[0].FileSHA)
}

func TestSaveDeterministic(t *testing.T) {
	dir := t.TempDir()
	m := Manifest{
		{ID: "b", Title: "B", RedirectHTMLPath: "b.html", CurrentTargetFile: "https://example.test/b", LastUpdatedAt: "2024-01-02T03:04:05Z"},
		{ID: "a", Title: "A", RedirectHTMLPath: "a.html", CurrentTargetFile: "https://example.test/a"},
	}

	first := filepath.Join(dir, "one.json")
	second := filepath.Join(dir, "two.json")
	require.NoError(t, m.Save(first))
	require.NoError(t, m.Save(second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOptionalFieldsOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirects.json")
	m := Manifest{{ID: "a", Title: "A", RedirectHTMLPath: "a.html", CurrentTargetFile: "https://example.test/a"}}
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "file_sha")
	assert.NotContains(t, string(data), "last_updated_at")
	assert.NotContains(t, string(data), "public_url")
}
