package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"decks/Security Deep Dive - Oct 2023.pdf",
		"decks/security-deep-dive.html", // generated redirect, skipped
		"notes.md",
		"zeta.pdf",
		".hidden",
		".gitkeep",
		"Thumbs.db",
		"desktop.ini",
		"old/INDEX.HTML", // case-insensitive html skip
		".git/config",    // dot-directory pruned
	} {
		writeFile(t, root, rel)
	}

	got, err := Discover(root, "public")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		"public/decks/Security Deep Dive - Oct 2023.pdf",
		"public/notes.md",
		"public/zeta.pdf",
	}
	if len(got) != len(want) {
		t.Fatalf("Discover returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Discover[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverSortedDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"c.pdf", "a.pdf", "b/d.pdf"} {
		writeFile(t, root, rel)
	}

	first, err := Discover(root, "public")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	second, err := Discover(root, "public")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 files, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("order not deterministic at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), "public"); err == nil {
		t.Error("expected error for missing content root")
	}
}
