package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pathtags/ptag/internal/pathutil"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/ptag/config.yml.
type GlobalConfig struct {
	StorePath string `yaml:"store_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ptag"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// StorePathEnv overrides the configured store path when set.
	StorePathEnv = "PTAG_STORE"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ptag/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.StorePath != "" {
		cfg.StorePath = pathutil.ExpandTilde(cfg.StorePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetStorePath returns the default store path: the PTAG_STORE environment
// variable when set, otherwise the global config value, otherwise empty.
func GetStorePath() string {
	if env := os.Getenv(StorePathEnv); env != "" {
		return pathutil.ExpandTilde(env)
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.StorePath
}

// HelpfulConfigMessage returns a helpful message when no store is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No ptag store found.

Tip: run 'ptag init' in the directory you want to tag under, or create
%s to set a default store:
  mkdir -p %s
  echo 'store_path: /path/to/your/store' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
