// Package manifest defines the persisted redirect manifest: an array of
// entries stored as indented JSON (redirects.json), read at the start of a
// run and rewritten atomically at the end.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
)

// Entry is one redirect record: an original content file, the generated
// redirect page that points at it, and bookkeeping fields. The id, title,
// and redirect_html_path fields are manually editable; reconciliation
// preserves them for matched entries.
type Entry struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	RedirectHTMLPath  string `json:"redirect_html_path"`
	CurrentTargetFile string `json:"current_target_file"`
	PublicURL         string `json:"public_url,omitempty"`
	LastUpdatedAt     string `json:"last_updated_at,omitempty"`
	FileSHA           string `json:"file_sha,omitempty"`
}

// Manifest is the ordered list of redirect entries.
type Manifest []Entry

// ErrMalformed reports a manifest file that exists but does not parse.
// Callers treat this as "start fresh" after logging, per the recovery
// contract: a broken manifest must not block regeneration.
var ErrMalformed = errors.New("manifest is not valid JSON")

// Load reads the manifest at path. A missing file yields an empty manifest
// and no error. A file that exists but fails to parse yields an empty
// manifest and an error wrapping [ErrMalformed].
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return m, nil
}

// Save sorts the manifest and writes it to path atomically as 2-space
// indented JSON with a trailing newline. The output is deterministic:
// saving the same manifest twice produces byte-identical files.
func (m Manifest) Save(path string) error {
	m.Sort()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Sort orders entries by lowercased id, ties broken by redirect path so
// the order is total even when ids collide.
func (m Manifest) Sort() {
	sort.SliceStable(m, func(i, j int) bool {
		a, b := strings.ToLower(m[i].ID), strings.ToLower(m[j].ID)
		if a != b {
			return a < b
		}
		return m[i].RedirectHTMLPath < m[j].RedirectHTMLPath
	})
}
