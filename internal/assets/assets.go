// Package assets finds moodboard images on disk and prepares them for
// embedding in a deck.
package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// DefaultSearchDirs are where uploaded images land, checked in order.
var DefaultSearchDirs = []string{"/mnt/user/uploads", "/mnt/user", "/uploads", "."}

// DefaultExtensions are the image extensions Discover matches.
var DefaultExtensions = []string{"png", "jpg", "jpeg"}

// Discover returns every regular file in dirs whose name ends in one of
// exts, deduplicated and sorted lexicographically. Missing directories are
// skipped. Only top-level files are matched.
func Discover(dirs, exts []string) ([]string, error) {
	seen := make(map[string]bool)
	var found []string

	for _, dir := range dirs {
		for _, ext := range exts {
			matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
			if err != nil {
				return nil, fmt.Errorf("bad search pattern in %q: %w", dir, err)
			}
			for _, m := range matches {
				if seen[m] {
					continue
				}
				if info, err := os.Stat(m); err != nil || !info.Mode().IsRegular() {
					continue
				}
				seen[m] = true
				found = append(found, m)
			}
		}
	}

	sort.Strings(found)
	return found, nil
}

// Loader decodes images and re-encodes them as PNG, honoring EXIF
// orientation and shrinking anything larger than MaxWidth x MaxHeight.
type Loader struct {
	MaxWidth  int
	MaxHeight int
}

// NewLoader returns a Loader that fits images within 1920x1080.
func NewLoader() *Loader {
	return &Loader{MaxWidth: 1920, MaxHeight: 1080}
}

// Load reads path and returns PNG bytes.
func (l *Loader) Load(path string) ([]byte, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrDecode)
	}

	if l.MaxWidth > 0 && l.MaxHeight > 0 {
		b := img.Bounds()
		if b.Dx() > l.MaxWidth || b.Dy() > l.MaxHeight {
			img = imaging.Fit(img, l.MaxWidth, l.MaxHeight, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode %s as PNG: %w", path, err)
	}
	return buf.Bytes(), nil
}
