// Package index regenerates the markdown listing of all redirects,
// grouped by top-level directory under the content root.
package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/manifest"
)

// rootGroup is the heading for entries that live directly in the content
// root rather than a subdirectory.
const rootGroup = "General"

// Builder produces the markdown index content.
type Builder struct {
	Root       string // absolute workspace root, for PDF metadata lookups
	BaseURL    string
	ContentDir string // content directory name under the root, e.g. "public"
	Log        *zap.SugaredLogger
}

// Build renders the full markdown document for m. Groups and rows are
// sorted so the output is deterministic for a given manifest.
func (b *Builder) Build(m manifest.Manifest) string {
	groups := make(map[string]manifest.Manifest)
	for _, e := range m {
		groups[b.groupOf(e)] = append(groups[b.groupOf(e)], e)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString("# Redirect index\n\n")
	buf.WriteString("Generated by redirgen; do not edit by hand. One row per redirect entry.\n")

	for _, name := range names {
		entries := groups[name]
		sort.Slice(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
		})

		fmt.Fprintf(&buf, "\n## %s\n\n", name)
		buf.WriteString("| Title | Redirect page | Original file | Last updated |\n")
		buf.WriteString("|---|---|---|---|\n")
		for _, e := range entries {
			fmt.Fprintf(&buf, "| %s | [%s](%s) | [file](%s) | %s |\n",
				b.titleCell(e), cell(e.ID), e.PublicURL, e.CurrentTargetFile, e.LastUpdatedAt)
		}
	}

	return buf.String()
}

// groupOf returns the entry's top-level directory under the content root.
func (b *Builder) groupOf(e manifest.Entry) string {
	rel := strings.TrimPrefix(e.RedirectHTMLPath, b.ContentDir+"/")
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return rootGroup
}

// titleCell decorates PDF targets with a best-effort page count. Failures
// are logged at debug level; a broken or unreadable PDF never fails the run.
func (b *Builder) titleCell(e manifest.Entry) string {
	title := cell(e.Title)

	rel := strings.TrimPrefix(e.CurrentTargetFile, b.BaseURL)
	if rel == e.CurrentTargetFile || !strings.EqualFold(filepath.Ext(rel), ".pdf") {
		return title
	}
	abs := filepath.Join(b.Root, filepath.FromSlash(rel))
	pages, err := pdfapi.PageCountFile(abs)
	if err != nil {
		b.Log.Debugf("page count for %s: %v", rel, err)
		return title
	}
	return fmt.Sprintf("%s (%d pages)", title, pages)
}

// cell escapes the markdown table delimiter in user-controlled text.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Write saves content to path atomically, skipping the write when the file
// already matches. Returns whether the index changed.
func Write(path, content string, dryRun bool, log *zap.SugaredLogger) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		log.Debugf("index unchanged: %s", path)
		return false, nil
	}
	if dryRun {
		log.Infof("[dry-run] would rewrite index %s", path)
		return true, nil
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return false, fmt.Errorf("write index: %w", err)
	}
	log.Infof("rewrote index %s", path)
	return true, nil
}
