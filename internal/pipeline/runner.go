// Package pipeline orchestrates a full maintenance run: scan the content
// directory, reconcile the manifest, render redirect pages, sweep orphans,
// and regenerate the markdown index. The render-only path re-emits pages
// from an existing manifest without touching it.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/config"
	"github.com/backmassage/redirgen/internal/index"
	"github.com/backmassage/redirgen/internal/manifest"
	"github.com/backmassage/redirgen/internal/reconcile"
	"github.com/backmassage/redirgen/internal/render"
	"github.com/backmassage/redirgen/internal/scan"
)

// Run executes the full sync: load, scan, hash, merge, render, sweep,
// index, persist. Under cfg.DryRun every write is logged and skipped.
func Run(cfg *config.Config, log *zap.SugaredLogger) (RunStats, error) {
	var stats RunStats

	tpl, err := render.LoadTemplate(cfg.TemplateAbs())
	if err != nil {
		return stats, err
	}

	old, err := manifest.Load(cfg.ManifestAbs())
	if err != nil {
		if !errors.Is(err, manifest.ErrMalformed) {
			return stats, err
		}
		log.Warnf("%v; rebuilding from scratch", err)
		old = nil
	}

	files, err := scan.Discover(cfg.ContentRoot(), cfg.ContentDir)
	if err != nil {
		return stats, err
	}
	stats.Scanned = len(files)
	log.Infof("found %d content files under %s", len(files), cfg.ContentDir)

	sources := make([]reconcile.Source, 0, len(files))
	for _, rel := range files {
		sha, err := hashFile(cfg.WorkspaceRoot, rel)
		if err != nil {
			log.Errorf("hash %s: %v (skipped)", rel, err)
			stats.SkippedFiles++
			continue
		}
		sources = append(sources, reconcile.Source{RelPath: rel, SHA: sha})
	}

	res := reconcile.Merge(old, sources, cfg.BaseURL, time.Now(), log)
	stats.Created = res.Created
	stats.Updated = res.Updated
	stats.Unchanged = res.Unchanged
	stats.Removed = res.Removed

	m := res.Manifest
	m.Sort()

	r := &render.Renderer{
		Template: tpl,
		Root:     cfg.WorkspaceRoot,
		BaseURL:  cfg.BaseURL,
		DryRun:   cfg.DryRun,
		Log:      log,
	}
	written, generated, err := r.RenderAll(m)
	stats.Rendered = written
	if err != nil {
		return stats, err
	}

	deleted, err := render.CleanOrphans(cfg.ContentRoot(), generated, cfg.DryRun, log)
	stats.OrphansDeleted = deleted
	if err != nil {
		return stats, err
	}

	b := &index.Builder{
		Root:       cfg.WorkspaceRoot,
		BaseURL:    cfg.BaseURL,
		ContentDir: cfg.ContentDir,
		Log:        log,
	}
	changed, err := index.Write(cfg.IndexAbs(), b.Build(m), cfg.DryRun, log)
	if err != nil {
		return stats, err
	}
	stats.IndexChanged = changed

	if cfg.DryRun {
		log.Infof("[dry-run] manifest not written")
	} else if err := m.Save(cfg.ManifestAbs()); err != nil {
		return stats, err
	}

	logSummary(log, stats)
	return stats, nil
}

// RenderOnly re-renders redirect pages from the manifest as it stands.
// Unlike Run it treats a missing or malformed manifest as fatal, never
// deletes anything, and leaves the manifest and index untouched. The
// paths of all claimed pages are published to $GITHUB_OUTPUT when that
// variable is set, for downstream workflow steps.
func RenderOnly(cfg *config.Config, log *zap.SugaredLogger) (RunStats, error) {
	var stats RunStats

	if _, err := os.Stat(cfg.ManifestAbs()); err != nil {
		return stats, fmt.Errorf("manifest: %w", err)
	}
	m, err := manifest.Load(cfg.ManifestAbs())
	if err != nil {
		return stats, err
	}
	if len(m) == 0 {
		log.Warnf("manifest %s has no entries", cfg.ManifestPath)
	}

	tpl, err := render.LoadTemplate(cfg.TemplateAbs())
	if err != nil {
		return stats, err
	}

	m.Sort()
	r := &render.Renderer{
		Template: tpl,
		Root:     cfg.WorkspaceRoot,
		BaseURL:  cfg.BaseURL,
		DryRun:   cfg.DryRun,
		Log:      log,
	}
	written, _, err := r.RenderAll(m)
	stats.Rendered = written
	if err != nil {
		return stats, err
	}

	if err := publishOutput(m, log); err != nil {
		return stats, err
	}

	log.Infof("rendered %d of %d pages", written, len(m))
	return stats, nil
}

// publishOutput appends a generated_files=<json array> line to the file
// named by $GITHUB_OUTPUT, listing the redirect page path of every entry.
// Outside Actions the variable is unset and this is a no-op.
func publishOutput(m manifest.Manifest, log *zap.SugaredLogger) error {
	out := os.Getenv("GITHUB_OUTPUT")
	if out == "" {
		return nil
	}
	paths := make([]string, 0, len(m))
	for _, e := range m {
		paths = append(paths, e.RedirectHTMLPath)
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("github output: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "generated_files=%s\n", data); err != nil {
		return fmt.Errorf("github output: %w", err)
	}
	log.Debugf("published %d page paths to GITHUB_OUTPUT", len(paths))
	return nil
}

func hashFile(root, rel string) (string, error) {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func logSummary(log *zap.SugaredLogger, s RunStats) {
	log.Infof("========================================")
	log.Infof("entries: %d created, %d updated, %d unchanged, %d removed",
		s.Created, s.Updated, s.Unchanged, s.Removed)
	log.Infof("pages: %d written, %d orphans deleted", s.Rendered, s.OrphansDeleted)
	if s.SkippedFiles > 0 {
		log.Warnf("skipped %d unreadable files; their manifest entries may have been dropped this run", s.SkippedFiles)
	}
	log.Infof("========================================")
}
