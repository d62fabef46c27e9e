package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvConfigPath     = "LIFELOG_CONFIG"
	DefaultConfigFile = "~/.config/lifelog/config.yaml"
)

// Load reads configuration with priority ENV > YAML > env-default tags.
// explicitPath (the --config flag) wins over LIFELOG_CONFIG, which wins
// over the default location. A missing file is only an error when a path was
// given explicitly.
func Load(explicitPath string) (*Config, error) {
	var cfg Config

	path := explicitPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	path = ExpandHome(path)

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	cfg.Database.Path = ExpandHome(cfg.Database.Path)
	cfg.Log.Dir = ExpandHome(cfg.Log.Dir)
	cfg.Backup.Dir = ExpandHome(cfg.Backup.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
