// Package publish writes the report artifact to the site directory.
// Writes are atomic and skipped entirely when the content is unchanged,
// so downstream "commit only if changed" automation sees stable mtimes
// and diffs.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matthewbaird/litterstats/internal/stats"
)

// DataFile is the artifact name inside the site directory.
const DataFile = "data.json"

// Publisher writes reports into a site directory.
type Publisher struct {
	siteDir string
}

// New creates a Publisher for the given site directory.
func New(siteDir string) *Publisher {
	return &Publisher{siteDir: siteDir}
}

// Marshal renders a report as the canonical data.json bytes: two-space
// indent, stable field order, trailing newline. Reports are plain
// structs, so identical reports always marshal to identical bytes.
func Marshal(r stats.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}
	return append(data, '\n'), nil
}

// Write publishes the report. It returns changed=false when the
// on-disk artifact already has identical content, in which case nothing
// is written.
func (p *Publisher) Write(r stats.Report) (changed bool, err error) {
	data, err := Marshal(r)
	if err != nil {
		return false, err
	}

	path := filepath.Join(p.siteDir, DataFile)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err := os.MkdirAll(p.siteDir, 0o755); err != nil {
		return false, fmt.Errorf("creating site dir: %w", err)
	}

	// Write to a temp file in the same directory, then rename, so a
	// reader never observes a half-written artifact.
	tmp, err := os.CreateTemp(p.siteDir, DataFile+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("renaming into place: %w", err)
	}
	return true, nil
}
