// Package reconcile merges the previously persisted manifest with the
// files discovered in the current scan.
//
// Identity is content-first: a scanned file matches an old entry by exact
// target URL (same place on disk), then by SHA-256 hash (same bytes moved
// elsewhere), then by inferred id (entries that predate hashing or were
// added by hand). Matched entries keep their manually
// editable fields (id, title, redirect path); only the volatile target
// URL and hash are refreshed, and the update timestamp moves only when
// one of those actually changed. Old entries no scanned file claims are
// dropped.
//
// Merge is a pure function of its inputs; all file I/O (scanning,
// hashing, persisting) happens in the callers.
package reconcile

import (
	"time"

	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/manifest"
	"github.com/backmassage/redirgen/internal/naming"
)

// Source is one scanned content file: its workspace-relative path
// (forward slashes) and the SHA-256 hex digest of its bytes.
type Source struct {
	RelPath string
	SHA     string
}

// Result carries the merged manifest and per-category counts for the run
// summary.
type Result struct {
	Manifest  manifest.Manifest
	Created   int
	Updated   int
	Unchanged int
	Removed   int
}

// Merge reconciles old against sources. baseURL must end with a slash;
// target URLs are baseURL + relative path, stored unencoded exactly as
// joined (encoding is a render-time concern). now is the timestamp
// stamped onto created and changed entries.
func Merge(old manifest.Manifest, sources []Source, baseURL string, now time.Time, log *zap.SugaredLogger) Result {
	byTarget := make(map[string]int, len(old))
	bySHA := make(map[string]int, len(old))
	byID := make(map[string]int, len(old))
	for i, e := range old {
		if e.CurrentTargetFile != "" {
			byTarget[e.CurrentTargetFile] = i // duplicates: last one wins
		}
		if e.FileSHA != "" {
			bySHA[e.FileSHA] = i
		}
		if e.ID == "" {
			log.Warnf("manifest entry for %q has no id; it cannot be tracked across renames", e.CurrentTargetFile)
			continue
		}
		if _, dup := byID[e.ID]; dup {
			log.Warnf("duplicate id %q in manifest; only the last occurrence is used for matching", e.ID)
		}
		byID[e.ID] = i
	}

	var res Result
	consumed := make([]bool, len(old))
	claimed := make(map[string]string) // redirect path -> id that claimed it
	stamp := now.UTC().Format(time.RFC3339)

	for _, src := range sources {
		inf := naming.Infer(src.RelPath)
		target := baseURL + src.RelPath

		idx := -1
		if i, ok := byTarget[target]; ok && !consumed[i] {
			idx = i
		} else if i, ok := bySHA[src.SHA]; ok && !consumed[i] {
			idx = i
		} else if i, ok := byID[inf.ID]; ok && !consumed[i] {
			idx = i
		}

		var e manifest.Entry
		if idx >= 0 {
			consumed[idx] = true
			prev := old[idx]
			e = manifest.Entry{
				ID:                prev.ID,
				Title:             prev.Title,
				RedirectHTMLPath:  prev.RedirectHTMLPath,
				CurrentTargetFile: target,
				FileSHA:           src.SHA,
				LastUpdatedAt:     prev.LastUpdatedAt,
			}
			// Backfill anything the old entry was missing.
			if e.ID == "" {
				e.ID = inf.ID
			}
			if e.Title == "" {
				e.Title = inf.Title
			}
			if e.RedirectHTMLPath == "" {
				e.RedirectHTMLPath = inf.RedirectHTMLPath
			}

			if prev.CurrentTargetFile != target || prev.FileSHA != src.SHA || e.LastUpdatedAt == "" {
				e.LastUpdatedAt = stamp
				res.Updated++
				log.Infof("updated %q: target now %s", e.ID, target)
			} else {
				res.Unchanged++
			}
		} else {
			e = manifest.Entry{
				ID:                inf.ID,
				Title:             inf.Title,
				RedirectHTMLPath:  inf.RedirectHTMLPath,
				CurrentTargetFile: target,
				FileSHA:           src.SHA,
				LastUpdatedAt:     stamp,
			}
			res.Created++
			log.Infof("new entry %q -> %s", e.ID, target)
		}

		if owner, ok := claimed[e.RedirectHTMLPath]; ok {
			log.Warnf("redirect path %q is claimed by both %q and %q; the rendered pages will overwrite each other",
				e.RedirectHTMLPath, owner, e.ID)
		}
		claimed[e.RedirectHTMLPath] = e.ID

		res.Manifest = append(res.Manifest, e)
	}

	for i, e := range old {
		if !consumed[i] {
			log.Infof("removing entry %q: %s no longer present in the scan", e.ID, e.CurrentTargetFile)
			res.Removed++
		}
	}

	return res
}
