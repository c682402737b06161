package render

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// CleanOrphans walks contentRoot and deletes any .html file that is not in
// the generated set — redirect pages whose manifest entries are gone.
// Returns the number of pages deleted (or that would be, under dry-run).
func CleanOrphans(contentRoot string, generated map[string]bool, dryRun bool, log *zap.SugaredLogger) (int, error) {
	deleted := 0
	err := filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".html") {
			return nil
		}
		if generated[path] {
			return nil
		}
		if dryRun {
			log.Infof("[dry-run] would delete orphan redirect %s", path)
			deleted++
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		log.Infof("deleted orphan redirect %s", path)
		deleted++
		return nil
	})
	return deleted, err
}
