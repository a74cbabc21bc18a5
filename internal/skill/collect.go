package skill

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is one bundle entry. Path carries the folder prefix the API requires,
// e.g. "dj-brand-guide-generator/SKILL.md".
type File struct {
	Path     string
	Content  []byte
	MIMEType string
}

var mimeTypes = map[string]string{
	".py":   "text/x-python",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".json": "application/json",
	".go":   "text/x-go",
}

// MIMEType guesses a bundle file's type from its extension (case-sensitive).
func MIMEType(name string) string {
	if t, ok := mimeTypes[filepath.Ext(name)]; ok {
		return t
	}
	return "application/octet-stream"
}

// Collect reads the top-level regular files of dir that m does not exclude,
// sorted by name. Symlinks are followed; one that resolves to a directory or
// to nothing is skipped. Subdirectories are never descended into.
func Collect(dir string, m Manifest) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill directory: %w", err)
	}

	// ReadDir sorts by file name.
	var files []File
	for _, e := range entries {
		name := e.Name()
		if m.ExcludeNames[name] || e.IsDir() {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if m.ExcludeExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		content, err := os.ReadFile(path) // #nosec G304 -- entry of the skill directory
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		files = append(files, File{
			Path:     m.FolderName + "/" + name,
			Content:  content,
			MIMEType: MIMEType(name),
		})
	}
	return files, nil
}
