// Package render generates the per-entry HTML redirect pages from the
// user-supplied template and removes generated pages whose entries are
// gone. Writes are idempotent: a page is only touched when its rendered
// content differs from what is on disk.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/manifest"
)

// Page is the data handed to the redirect template.
type Page struct {
	Title     string
	TargetURL string
	PublicURL string
}

// LoadTemplate reads and parses the redirect template. A missing or
// unparsable template is fatal to the run.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("redirect template: %w", err)
	}
	tpl, err := template.New(filepath.Base(path)).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("redirect template %s: %w", path, err)
	}
	return tpl, nil
}

// Renderer writes redirect pages under Root (the absolute workspace root).
type Renderer struct {
	Template *template.Template
	Root     string
	BaseURL  string
	DryRun   bool
	Log      *zap.SugaredLogger
}

// RenderAll renders one page per entry and stores the computed public URL
// back into the entry. It returns the number of pages written (or that
// would be written under dry-run) and the set of absolute page paths this
// run claims; the caller feeds that set to [CleanOrphans].
func (r *Renderer) RenderAll(m manifest.Manifest) (written int, generated map[string]bool, err error) {
	generated = make(map[string]bool, len(m))

	for i := range m {
		e := &m[i]
		e.PublicURL = PublicURL(r.BaseURL, e.RedirectHTMLPath)

		page := Page{
			Title:     e.Title,
			TargetURL: EncodeTarget(e.CurrentTargetFile),
			PublicURL: e.PublicURL,
		}

		var buf bytes.Buffer
		if err := r.Template.Execute(&buf, page); err != nil {
			return written, generated, fmt.Errorf("render %s: %w", e.RedirectHTMLPath, err)
		}

		abs := filepath.Join(r.Root, filepath.FromSlash(e.RedirectHTMLPath))
		generated[abs] = true

		if existing, err := os.ReadFile(abs); err == nil && bytes.Equal(existing, buf.Bytes()) {
			r.Log.Debugf("unchanged: %s", e.RedirectHTMLPath)
			continue
		}

		if r.DryRun {
			r.Log.Infof("[dry-run] would write %s", e.RedirectHTMLPath)
			written++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return written, generated, fmt.Errorf("create directory for %s: %w", e.RedirectHTMLPath, err)
		}
		if err := atomic.WriteFile(abs, &buf); err != nil {
			return written, generated, fmt.Errorf("write %s: %w", e.RedirectHTMLPath, err)
		}
		r.Log.Infof("generated %s", e.RedirectHTMLPath)
		written++
	}

	return written, generated, nil
}
