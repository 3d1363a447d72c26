package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is read from ordersynth.config.json (via viper) with defaults
// applied in code.
type Config struct {
	Version       string   `json:"version" mapstructure:"version"`
	DataDir       string   `json:"data_dir" mapstructure:"data_dir"`
	ChunkSize     int      `json:"chunk_size" mapstructure:"chunk_size"`
	LoadBatchSize int      `json:"load_batch_size" mapstructure:"load_batch_size"`
	BackfillStart string   `json:"backfill_start" mapstructure:"backfill_start"`
	Database      Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.LoadBatchSize == 0 {
		cfg.LoadBatchSize = 1000
	}
	if cfg.BackfillStart == "" {
		// The historical dataset ends in mid October 2018.
		cfg.BackfillStart = "2018-10-18"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

// BackfillStartDate parses the configured gap start boundary.
func (c *Config) BackfillStartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.BackfillStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid backfill_start %q: %w", c.BackfillStart, err)
	}
	return t, nil
}
