// Package check provides the `check` diagnostics: it verifies every input
// the sync pipeline needs (content root, template, manifest) and reports
// what it finds without changing anything.
package check

import (
	"errors"
	"os"

	"github.com/backmassage/redirgen/internal/config"
	"github.com/backmassage/redirgen/internal/manifest"
	"github.com/backmassage/redirgen/internal/render"
	"github.com/backmassage/redirgen/internal/scan"
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing a concrete logger) so check stays dependency-light
// and testable with a recording fake; *zap.SugaredLogger satisfies it.
type Logger interface {
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
}

// RunCheck verifies the workspace and reports each finding. It returns
// false when something the sync pipeline treats as fatal is missing; a
// missing or malformed manifest is only a warning, since sync starts
// fresh in that case.
func RunCheck(cfg *config.Config, log Logger) bool {
	ok := true
	log.Infof("workspace root: %s", cfg.WorkspaceRoot)
	log.Infof("base URL: %s", cfg.BaseURL)

	if info, err := os.Stat(cfg.ContentRoot()); err != nil || !info.IsDir() {
		log.Errorf("content root missing: %s", cfg.ContentRoot())
		ok = false
	} else if files, err := scan.Discover(cfg.ContentRoot(), cfg.ContentDir); err != nil {
		log.Errorf("content root not scannable: %v", err)
		ok = false
	} else {
		log.Infof("content root: %s (%d content files)", cfg.ContentRoot(), len(files))
	}

	if _, err := render.LoadTemplate(cfg.TemplateAbs()); err != nil {
		log.Errorf("%v", err)
		ok = false
	} else {
		log.Infof("template: %s", cfg.TemplatePath)
	}

	m, err := manifest.Load(cfg.ManifestAbs())
	switch {
	case errors.Is(err, manifest.ErrMalformed):
		log.Warnf("manifest is malformed and will be regenerated: %v", err)
	case err != nil:
		log.Errorf("manifest: %v", err)
		ok = false
	case len(m) == 0:
		log.Warnf("manifest: %s (empty or missing; sync will create it)", cfg.ManifestPath)
	default:
		log.Infof("manifest: %s (%d entries)", cfg.ManifestPath, len(m))
	}

	return ok
}
