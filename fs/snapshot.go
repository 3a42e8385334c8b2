// Package fs stores snapshots of fetched listing pages on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/placelist"
)

// Ensure SnapshotStore implements placelist.SnapshotStore at compile time.
var _ placelist.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore writes page HTML to baseDir/<host>/<hash>.html.
// Identical HTML from the same host maps to the same file, so repeated
// fetches of an unchanged listing do not pile up copies. Writes are atomic:
// content goes to a temporary file that is renamed into place.
type SnapshotStore struct {
	baseDir string
}

// NewSnapshotStore creates a SnapshotStore rooted at baseDir.
func NewSnapshotStore(baseDir string) *SnapshotStore {
	return &SnapshotStore{baseDir: baseDir}
}

// Save writes html and returns the path of the snapshot file.
func (s *SnapshotStore) Save(ctx context.Context, rawURL string, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel, err := SnapshotPath(rawURL, html)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".snapshot-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}

// SnapshotPath returns the relative path of the snapshot of html fetched
// from rawURL. Returns EINVALID if rawURL has no host.
func SnapshotPath(rawURL string, html string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", placelist.Errorf(placelist.EINVALID, "invalid snapshot URL %q", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "_")
	return filepath.Join(host, fmt.Sprintf("%016x.html", xxhash.Sum64String(html))), nil
}
