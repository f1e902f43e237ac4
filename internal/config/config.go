// Package config loads the curator configuration from YAML with
// environment overrides. Missing files yield defaults; out-of-range
// values are clamped rather than rejected.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studyloop/curator/internal/curation"
)

// Config is the curator configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"` // debug, info, warn, error
	DBPath   string        `yaml:"db_path"`   // SQLite cache database path
	Cache    CacheConfig   `yaml:"cache"`
	Scoring  ScoringConfig `yaml:"scoring"`
	Select   SelectConfig  `yaml:"selection"`
}

// CacheConfig holds cache tier settings.
type CacheConfig struct {
	Capacity           int    `yaml:"capacity"`
	Version            string `yaml:"version"`
	SearchTTLHours     int    `yaml:"search_ttl_hours"`
	StatsTTLHours      int    `yaml:"stats_ttl_hours"`
	HeadTTLHours       int    `yaml:"head_ttl_hours"`
	NegativeTTLMinutes int    `yaml:"negative_ttl_minutes"`
}

// ScoringConfig holds blending weights per source family.
type ScoringConfig struct {
	Video VideoWeights `yaml:"video"`
	Doc   DocWeights   `yaml:"doc"`
}

// VideoWeights blends the video score components.
type VideoWeights struct {
	Popularity  float64 `yaml:"popularity"`
	Recency     float64 `yaml:"recency"`
	Relevance   float64 `yaml:"relevance"`
	Suitability float64 `yaml:"suitability"`
}

// DocWeights blends the document score components.
type DocWeights struct {
	Authority float64 `yaml:"authority"`
	Relevance float64 `yaml:"relevance"`
	Recency   float64 `yaml:"recency"`
}

// SelectConfig holds default selection policy values.
type SelectConfig struct {
	MinScore        float64 `yaml:"min_score"`
	MaxItems        int     `yaml:"max_items"`
	PreferDiversity bool    `yaml:"prefer_diversity"`
	EarlyStop       bool    `yaml:"early_stop"`
}

// Validation limits.
const (
	MinCapacity = 1
	MaxCapacity = 65536
	MaxItems    = 10
)

// Default returns the default configuration. DBPath is left empty and
// resolved to DefaultDBPath at load time.
func Default() *Config {
	w := curation.DefaultWeights()
	return &Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Capacity:           curation.DefaultLRUCapacity,
			Version:            "1",
			SearchTTLHours:     int(curation.DefaultSearchTTL.Hours()),
			StatsTTLHours:      int(curation.DefaultStatsTTL.Hours()),
			HeadTTLHours:       int(curation.DefaultHeadTTL.Hours()),
			NegativeTTLMinutes: int(curation.DefaultNegativeTTL.Minutes()),
		},
		Scoring: ScoringConfig{
			Video: VideoWeights{
				Popularity:  w.Video.Popularity,
				Recency:     w.Video.Recency,
				Relevance:   w.Video.Relevance,
				Suitability: w.Video.Suitability,
			},
			Doc: DocWeights{
				Authority: w.Doc.Authority,
				Relevance: w.Doc.Relevance,
				Recency:   w.Doc.Recency,
			},
		},
		Select: SelectConfig{
			MinScore:        0,
			MaxItems:        curation.DefaultMaxItems,
			PreferDiversity: true,
			EarlyStop:       false,
		},
	}
}

// DefaultDBPath returns ~/.studyloop/curation.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".studyloop", "curation.db"), nil
}

// DefaultConfigPath returns ~/.studyloop/curator.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".studyloop", "curator.yaml"), nil
}

// Load reads the configuration from path, overlaying it on the
// defaults. A missing file is not an error. CURATOR_* environment
// variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults apply
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.DBPath == "" {
		dbPath, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = dbPath
	}

	cfg.clamp()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CURATOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CURATOR_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CURATOR_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Capacity = n
		}
	}
	if v := os.Getenv("CURATOR_CACHE_VERSION"); v != "" {
		cfg.Cache.Version = v
	}
}

// clamp forces out-of-range values back to usable ones.
func (c *Config) clamp() {
	if c.Cache.Capacity < MinCapacity {
		c.Cache.Capacity = curation.DefaultLRUCapacity
	}
	if c.Cache.Capacity > MaxCapacity {
		c.Cache.Capacity = MaxCapacity
	}
	if c.Cache.Version == "" {
		c.Cache.Version = "1"
	}
	if c.Cache.SearchTTLHours <= 0 {
		c.Cache.SearchTTLHours = int(curation.DefaultSearchTTL.Hours())
	}
	if c.Cache.StatsTTLHours <= 0 {
		c.Cache.StatsTTLHours = int(curation.DefaultStatsTTL.Hours())
	}
	if c.Cache.HeadTTLHours <= 0 {
		c.Cache.HeadTTLHours = int(curation.DefaultHeadTTL.Hours())
	}
	if c.Cache.NegativeTTLMinutes <= 0 {
		c.Cache.NegativeTTLMinutes = int(curation.DefaultNegativeTTL.Minutes())
	}
	if c.Select.MaxItems <= 0 {
		c.Select.MaxItems = curation.DefaultMaxItems
	}
	if c.Select.MaxItems > MaxItems {
		c.Select.MaxItems = MaxItems
	}
	if c.Select.MinScore < 0 {
		c.Select.MinScore = 0
	}
	if c.Select.MinScore > 1 {
		c.Select.MinScore = 1
	}
}

// TTLs converts the configured stage TTLs to the engine's table form.
func (c *Config) TTLs() curation.TTLTable {
	return curation.TTLTable{
		curation.StageSearch:   time.Duration(c.Cache.SearchTTLHours) * time.Hour,
		curation.StageStats:    time.Duration(c.Cache.StatsTTLHours) * time.Hour,
		curation.StageHead:     time.Duration(c.Cache.HeadTTLHours) * time.Hour,
		curation.StageNegative: time.Duration(c.Cache.NegativeTTLMinutes) * time.Minute,
	}
}

// Weights converts the configured scoring weights to the engine form.
func (c *Config) Weights() curation.Weights {
	return curation.Weights{
		Video: curation.VideoWeights{
			Popularity:  c.Scoring.Video.Popularity,
			Recency:     c.Scoring.Video.Recency,
			Relevance:   c.Scoring.Video.Relevance,
			Suitability: c.Scoring.Video.Suitability,
		},
		Doc: curation.DocWeights{
			Authority: c.Scoring.Doc.Authority,
			Relevance: c.Scoring.Doc.Relevance,
			Recency:   c.Scoring.Doc.Recency,
		},
	}
}

// SelectOptions converts the configured selection defaults.
func (c *Config) SelectOptions() curation.SelectOptions {
	return curation.SelectOptions{
		MinScore:         c.Select.MinScore,
		MaxItems:         c.Select.MaxItems,
		PreferDiversity:  c.Select.PreferDiversity,
		EarlyStopEnabled: c.Select.EarlyStop,
	}
}
