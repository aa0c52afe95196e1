package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultBaseURL = "http://localhost:8080"

type ClientConfig struct {
	BaseURL string `toml:"base_url"`
	DataDir string `toml:"data_dir"`
}

// LoadClientConfig reads a TOML file. A missing file yields the defaults.
func LoadClientConfig(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{
		BaseURL: DefaultBaseURL,
		DataDir: defaultDataDir(),
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sunnah-steps"
	}
	return filepath.Join(dir, "sunnah-steps")
}
