// Package skill packages a skill directory and publishes it to the hosted
// skills API.
package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional manifest read from the skill directory.
const ManifestFile = "skill.yaml"

// Defaults used when no manifest overrides them.
const (
	DefaultTitle  = "DJ Brand Guide Generator"
	DefaultFolder = "dj-brand-guide-generator"
)

// Manifest names the hosted skill and what to leave out of its bundle.
type Manifest struct {
	DisplayTitle      string          `yaml:"display_title"`
	FolderName        string          `yaml:"folder_name"`
	ExcludeNames      map[string]bool `yaml:"-"`
	ExcludeExtensions map[string]bool `yaml:"-"`
}

// manifestFile is the on-disk shape; the lists add to the defaults.
type manifestFile struct {
	DisplayTitle      string   `yaml:"display_title"`
	FolderName        string   `yaml:"folder_name"`
	ExcludeNames      []string `yaml:"exclude_names"`
	ExcludeExtensions []string `yaml:"exclude_extensions"`
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() Manifest {
	return Manifest{
		DisplayTitle: DefaultTitle,
		FolderName:   DefaultFolder,
		ExcludeNames: set(
			"venv", ".venv", "env", "__pycache__",
			".git", ".gitignore", ".gitignore_skill", "node_modules",
			".DS_Store", ".env", ".claude",
			"upload_skill.py",
			"README.md", "CLAUDE.md",
			ManifestFile,
		),
		ExcludeExtensions: set(".png", ".pptx", ".json"),
	}
}

// LoadManifest reads dir/skill.yaml over DefaultManifest. A missing file
// yields the defaults.
func LoadManifest(dir string) (Manifest, error) {
	m := DefaultManifest()

	data, err := os.ReadFile(filepath.Join(dir, ManifestFile)) // #nosec G304 -- user-chosen skill directory
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("failed to read manifest: %w", err)
	}

	var f manifestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return m, fmt.Errorf("%s: %v: %w", ManifestFile, err, ErrInvalidManifest)
	}
	if f.DisplayTitle != "" {
		m.DisplayTitle = f.DisplayTitle
	}
	if f.FolderName != "" {
		if strings.ContainsAny(f.FolderName, `/\`) {
			return m, fmt.Errorf("folder_name %q must be a single path segment: %w", f.FolderName, ErrInvalidManifest)
		}
		m.FolderName = f.FolderName
	}
	for _, n := range f.ExcludeNames {
		m.ExcludeNames[n] = true
	}
	for _, e := range f.ExcludeExtensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m.ExcludeExtensions[strings.ToLower(e)] = true
	}
	return m, nil
}

func set(items ...string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}
