// Package config reads and writes the user's brandguide settings.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config keys.
const (
	KeyOutputDir = "output-dir"
	KeyImageDirs = "image-dirs"
)

// Environment variable fallbacks.
const (
	EnvOutputDir = "BRANDGUIDE_OUTPUT_DIR"
	EnvImageDirs = "BRANDGUIDE_IMAGE_DIRS"
)

// appDir names the directory under the user config root.
const appDir = "brandguide"

// ErrUnknownKey indicates a key that is not one of Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settable keys in display order.
var Keys = []string{KeyOutputDir, KeyImageDirs}

// Config holds user configuration loaded from ~/.config/brandguide/config.
type Config struct {
	OutputDir string
	// ImageDirs replaces the default image search directories when set.
	ImageDirs []string
}

// CheckKey returns ErrUnknownKey for keys outside Keys.
func CheckKey(key string) error {
	for _, k := range Keys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("%q (valid: %s): %w", key, strings.Join(Keys, ", "), ErrUnknownKey)
}

// SplitList splits an image-dirs value on the OS path-list separator,
// dropping empty elements and expanding ~.
func SplitList(v string) []string {
	var dirs []string
	for _, d := range filepath.SplitList(v) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, ExpandPath(d))
		}
	}
	return dirs
}

// dir returns $XDG_CONFIG_HOME/brandguide or ~/.config/brandguide.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the config file, then fills unset keys from the environment.
// A missing file is not an error.
func Load() (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	data, err := parseFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	outputDir := data[KeyOutputDir]
	if outputDir == "" {
		outputDir = os.Getenv(EnvOutputDir)
	}
	cfg.OutputDir = ExpandPath(outputDir)

	imageDirs := data[KeyImageDirs]
	if imageDirs == "" {
		imageDirs = os.Getenv(EnvImageDirs)
	}
	cfg.ImageDirs = SplitList(imageDirs)

	return cfg, nil
}

// parseFile reads a key=value file: one pair per line, # comments and
// blank lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return data, nil
}

// Save sets key in the config file, creating it if needed. Other keys are
// kept; comments are not.
func Save(key, value string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, _ := parseFile(p)
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value
	return writeFile(p, existing)
}

// writeFile writes data sorted by key.
func writeFile(p string, data map[string]string) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, data[k])
	}
	// #nosec G306 -- config file with standard permissions
	if err := os.WriteFile(p, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Get reads a single value from the config file; an unset key is "".
func Get(key string) (string, error) {
	if err := CheckKey(key); err != nil {
		return "", err
	}
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns every value in the config file.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	return data, err
}

// ResolveOutputPath picks the final output path:
//  1. an absolute output is used as is
//  2. a relative output is joined to outputDir when set
//  3. an empty output becomes defaultName, in outputDir when set
func ResolveOutputPath(output, outputDir, defaultName string) string {
	if output != "" && filepath.IsAbs(output) {
		return filepath.Clean(output)
	}
	if output == "" {
		output = defaultName
	}
	if outputDir != "" {
		return filepath.Clean(filepath.Join(outputDir, output))
	}
	return filepath.Clean(output)
}

// ValidOutputDir checks that d is, or can be created as, a writable
// directory.
func ValidOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("output-dir cannot be empty")
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
			return fmt.Errorf("cannot create directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", d)
	}

	f, err := os.CreateTemp(d, ".brandguide-write-test-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
