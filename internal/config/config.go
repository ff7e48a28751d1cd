// Package config handles store discovery and repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathtags/ptag/internal/pathutil"
)

// Config represents store configuration kept in .ptag/config.json.
type Config struct {
	WarnMissing bool   `json:"warn_missing,omitempty"` // Warn when tagging a path absent on disk
	Editor      string `json:"editor,omitempty"`       // Preferred editor for opening tagged files
}

const (
	PtagDir     = ".ptag"
	ConfigFile  = "config.json"
	EntriesFile = "paths.jsonl"
	TagDefsFile = "tags.jsonl"
	CacheDir    = "cache"
	DBFile      = "index.db"
)

// PtagPath returns the path to the .ptag directory from a store root.
func PtagPath(root string) string {
	return filepath.Join(root, PtagDir)
}

// ConfigPath returns the path to config.json from a store root.
func ConfigPath(root string) string {
	return filepath.Join(root, PtagDir, ConfigFile)
}

// EntriesPath returns the path to paths.jsonl from a store root.
func EntriesPath(root string) string {
	return filepath.Join(root, PtagDir, EntriesFile)
}

// TagDefsPath returns the path to tags.jsonl from a store root.
func TagDefsPath(root string) string {
	return filepath.Join(root, PtagDir, TagDefsFile)
}

// CachePath returns the path to the cache directory from a store root.
func CachePath(root string) string {
	return filepath.Join(root, PtagDir, CacheDir)
}

// DBPath returns the path to the SQLite cache from a store root.
func DBPath(root string) string {
	return filepath.Join(root, PtagDir, CacheDir, DBFile)
}

// IsStore checks if the given path contains a ptag store.
func IsStore(root string) bool {
	info, err := os.Stat(PtagPath(root))
	return err == nil && info.IsDir()
}

// FindStore walks up from the given path to find a ptag store.
// Returns the store root path or an error if not found.
func FindStore(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsStore(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a ptag store (no .ptag directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the store at the given root.
// A missing config file yields the zero config, not an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the store at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateEditor checks that the editor value names an executable on PATH or
// an existing file.
func ValidateEditor(editor string) error {
	if editor == "" {
		return nil // Empty defaults to $EDITOR
	}

	expanded := pathutil.ExpandTilde(editor)
	if filepath.IsAbs(expanded) {
		if _, err := os.Stat(expanded); err != nil {
			return fmt.Errorf("editor not found: %s", expanded)
		}
		return nil
	}
	return nil // Bare names are resolved via PATH at invocation time
}
