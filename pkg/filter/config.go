// Package filter implements the repo-level policy layer: path
// ignores, secret allow-lists, and fingerprint-scoped ignores. It sits
// above pkg/rule, which handles per-rule allow-lists and path
// restrictions of its own; the two compose into the full decision
// chain a candidate match has to survive before it's reported.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/casoon/nosecrets-go/pkg/types"
)

// ConfigFileName is the repo-level config file name, resolved relative
// to the scan root.
const ConfigFileName = ".nosecrets.toml"

// IgnoreFileName is the fingerprint-ignore file name, resolved
// relative to the scan root.
const IgnoreFileName = ".nosecretsignore"

// LoadConfig reads `<dir>/.nosecrets.toml`. A missing file is not an
// error: it yields a nil Config, which Filter treats as all-zero
// values (no ignores, no allow-list). Unknown keys are accepted for
// forward compatibility.
func LoadConfig(dir string) (*types.Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg types.Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadIgnoreFile reads a `.nosecretsignore`-shaped file: one entry per
// line, `#` and blank lines skipped, format `FINGERPRINT[:GLOB]`. A
// missing file yields an empty, non-error result.
func LoadIgnoreFile(path string) ([]types.IgnoreEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var entries []types.IgnoreEntry
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fingerprint, glob, _ := strings.Cut(trimmed, ":")
		entries = append(entries, types.IgnoreEntry{
			Fingerprint: strings.TrimSpace(fingerprint),
			PathGlob:    strings.TrimSpace(glob),
		})
	}
	return entries, nil
}
