package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds display tunables. The anchor scheme itself (hash function,
// relocation window) is fixed by the anchor contract and deliberately not
// configurable.
type Config struct {
	DiffContext int    `toml:"diff_context"` // unchanged lines shown around each diff change
	GrepContext int    `toml:"grep_context"` // context lines around each grep match
	PageLines   int    `toml:"page_lines"`   // lines per page for the read command
	LogFile     string `toml:"log_file"`     // debug log destination; empty disables logging
}

func defaultConfig() Config {
	return Config{DiffContext: 4, GrepContext: 2, PageLines: 100}
}

// loadConfig reads the TOML config at path, or at the default location when
// path is empty. A missing default config is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.DiffContext < 0 || cfg.GrepContext < 0 || cfg.PageLines < 1 {
		return Config{}, fmt.Errorf("config %s: diff_context and grep_context must be >= 0, page_lines >= 1", path)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "anchoredit", "config.toml")
}
