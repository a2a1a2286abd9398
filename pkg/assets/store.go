// Package assets resolves icon references to image files on disk.
//
// Nodes carry icon references as opaque strings; the pipeline resolves them
// through a [Store] before emitting the graph description, so the layout
// engine always receives paths that exist. The store never reads or validates
// icon contents - it only answers whether a reference resolves.
package assets

import (
	"os"
	"path/filepath"

	"github.com/archsketch/archsketch/pkg/errors"
)

// Store is a path-addressed lookup from an icon reference to an image file.
type Store interface {
	// Resolve maps ref to an absolute file path. A reference that does not
	// resolve fails with an ASSET_NOT_FOUND error.
	Resolve(ref string) (string, error)
}

// Dir is a Store rooted at one or more directories. A reference resolves to
// the first root under which it names an existing regular file; absolute
// references resolve directly.
type Dir struct {
	roots []string
}

// NewDir creates a directory-backed store searching roots in order.
// With no roots, only absolute references and paths relative to the working
// directory resolve.
func NewDir(roots ...string) *Dir {
	return &Dir{roots: roots}
}

// Resolve implements [Store].
func (d *Dir) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", errors.New(errors.ErrCodeAssetNotFound, "empty icon reference")
	}

	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		for _, root := range d.roots {
			candidates = append(candidates, filepath.Join(root, ref))
		}
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		return abs, nil
	}

	return "", errors.New(errors.ErrCodeAssetNotFound, "icon %q not found", ref)
}
