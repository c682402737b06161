// Package scan discovers publishable content files under the content root.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OS artifacts and housekeeping files that never become redirect targets.
var skipNames = map[string]bool{
	".gitkeep":    true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

// Discover walks contentRoot (an absolute path) and returns the relative
// paths of content files, forward-slashed and prefixed with relPrefix
// (the content directory's path under the workspace root). Dotfiles, OS
// artifacts, and generated .html files are skipped; dot-directories are
// pruned. Paths are sorted lexicographically for deterministic processing
// order.
func Discover(contentRoot, relPrefix string) ([]string, error) {
	info, err := os.Stat(contentRoot)
	if err != nil {
		return nil, fmt.Errorf("content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", contentRoot)
	}

	var files []string
	err = filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != contentRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !keep(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(contentRoot, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(filepath.Join(relPrefix, rel)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func keep(name string) bool {
	if strings.HasPrefix(name, ".") || skipNames[name] {
		return false
	}
	return !strings.EqualFold(filepath.Ext(name), ".html")
}
